package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"svctopo/internal/domain"
)

// dnsProbe resolves spec.Host with the configured query type. When
// dnsExpectedResult is set, the match rule depends on the record type:
// exact IP for A/AAAA, equality for CNAME, any-record-host for MX/NS,
// substring for TXT.
func dnsProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	qtype, ok := recordTypeToDNSType(spec.DNSQueryType)
	if !ok {
		return deadOnErr(fmt.Errorf("unsupported dns query type: %s", spec.DNSQueryType))
	}

	client := &dns.Client{}
	msg := dns.Msg{}
	msg.SetQuestion(dns.Fqdn(spec.Host), qtype)

	server := resolverAddr()
	resp, _, err := client.ExchangeContext(ctx, &msg, server)
	if err != nil {
		return deadOnErr(fmt.Errorf("dns query failed: %w", err))
	}
	if resp.Rcode != dns.RcodeSuccess {
		return deadOnErr(fmt.Errorf("dns error: %s", dns.RcodeToString[resp.Rcode]))
	}

	if spec.DNSExpectedResult == "" {
		return alive()
	}

	if matchDNSAnswer(spec.DNSQueryType, spec.DNSExpectedResult, resp.Answer) {
		return alive()
	}
	return deadOnErr(fmt.Errorf("dns answer did not match expected result %q", spec.DNSExpectedResult))
}

func recordTypeToDNSType(qt domain.DNSQueryType) (uint16, bool) {
	switch qt {
	case domain.DNSTypeA:
		return dns.TypeA, true
	case domain.DNSTypeAAAA:
		return dns.TypeAAAA, true
	case domain.DNSTypeCNAME:
		return dns.TypeCNAME, true
	case domain.DNSTypeMX:
		return dns.TypeMX, true
	case domain.DNSTypeTXT:
		return dns.TypeTXT, true
	case domain.DNSTypeNS:
		return dns.TypeNS, true
	case domain.DNSTypeSOA:
		return dns.TypeSOA, true
	default:
		return 0, false
	}
}

func matchDNSAnswer(qt domain.DNSQueryType, expected string, answers []dns.RR) bool {
	for _, rr := range answers {
		switch v := rr.(type) {
		case *dns.A:
			if qt == domain.DNSTypeA && v.A.String() == expected {
				return true
			}
		case *dns.AAAA:
			if qt == domain.DNSTypeAAAA && v.AAAA.String() == expected {
				return true
			}
		case *dns.CNAME:
			if qt == domain.DNSTypeCNAME && strings.TrimSuffix(v.Target, ".") == strings.TrimSuffix(expected, ".") {
				return true
			}
		case *dns.MX:
			if qt == domain.DNSTypeMX && strings.TrimSuffix(v.Mx, ".") == strings.TrimSuffix(expected, ".") {
				return true
			}
		case *dns.NS:
			if qt == domain.DNSTypeNS && strings.TrimSuffix(v.Ns, ".") == strings.TrimSuffix(expected, ".") {
				return true
			}
		case *dns.TXT:
			if qt == domain.DNSTypeTXT {
				for _, txt := range v.Txt {
					if strings.Contains(txt, expected) {
						return true
					}
				}
			}
		}
	}
	return false
}

func resolverAddr() string {
	cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(cfg.Servers) == 0 {
		return "8.8.8.8:53"
	}
	return cfg.Servers[0] + ":" + cfg.Port
}
