// Package validator holds the explicit per-method checks a ServiceSpec must
// pass before the scheduler should ever dispatch it. Each Method reads a
// different subset of ServiceSpec, so validation is one function per method
// rather than one generic shape check.
package validator

import (
	"fmt"

	"svctopo/internal/domain"
)

// Validate dispatches to the method-specific check for spec.Method. An
// unrecognized method is always invalid.
func Validate(spec *domain.ServiceSpec) error {
	if spec.Host == "" {
		return fmt.Errorf("host is required")
	}
	if spec.PollingIntervalSec <= 0 {
		return fmt.Errorf("polling_interval_sec must be positive")
	}

	switch spec.Method {
	case domain.MethodHTTP, domain.MethodHTTPS:
		return validateHTTP(spec)
	case domain.MethodTCP:
		return validatePort(spec)
	case domain.MethodUDP:
		return validateUDP(spec)
	case domain.MethodICMP:
		return validateICMP(spec)
	case domain.MethodDNS:
		return validateDNS(spec)
	case domain.MethodWS, domain.MethodWSS:
		return validateWS(spec)
	case domain.MethodGRPC:
		return validateGRPC(spec)
	case domain.MethodKafka:
		return validateKafka(spec)
	case domain.MethodPostgres, domain.MethodSMTP, domain.MethodFTP, domain.MethodSSH,
		domain.MethodRedis, domain.MethodMySQL, domain.MethodMongoDB:
		return validatePort(spec)
	default:
		return fmt.Errorf("unknown method %q", spec.Method)
	}
}

// validatePort covers every method that only needs host:port reachability.
func validatePort(spec *domain.ServiceSpec) error {
	if spec.Port <= 0 || spec.Port > 65535 {
		return fmt.Errorf("port %d out of range", spec.Port)
	}
	return nil
}

func validateHTTP(spec *domain.ServiceSpec) error {
	if spec.HealthcheckPath == "" {
		return fmt.Errorf("healthcheck_path is required for method %q", spec.Method)
	}
	switch spec.HTTPMethod {
	case "", domain.HTTPGet, domain.HTTPPost, domain.HTTPPut, domain.HTTPDelete, domain.HTTPHead, domain.HTTPOptions:
	default:
		return fmt.Errorf("unsupported http_method %q", spec.HTTPMethod)
	}
	if spec.ExpectedStatus != 0 && (spec.ExpectedStatus < 100 || spec.ExpectedStatus > 599) {
		return fmt.Errorf("expected_status %d is not a valid HTTP status code", spec.ExpectedStatus)
	}
	return nil
}

func validateUDP(spec *domain.ServiceSpec) error {
	if err := validatePort(spec); err != nil {
		return err
	}
	if spec.UDPSendData == "" {
		return fmt.Errorf("udp_send_data is required: a UDP probe with nothing to send can't distinguish silence from a dead service")
	}
	return nil
}

func validateICMP(spec *domain.ServiceSpec) error {
	if spec.ICMPPacketCount < 0 {
		return fmt.Errorf("icmp_packet_count must not be negative")
	}
	return nil
}

func validateDNS(spec *domain.ServiceSpec) error {
	switch spec.DNSQueryType {
	case domain.DNSTypeA, domain.DNSTypeAAAA, domain.DNSTypeCNAME, domain.DNSTypeMX,
		domain.DNSTypeTXT, domain.DNSTypeNS, domain.DNSTypeSOA:
	default:
		return fmt.Errorf("unsupported dns_query_type %q", spec.DNSQueryType)
	}
	return nil
}

func validateWS(spec *domain.ServiceSpec) error {
	if spec.HealthcheckPath == "" {
		return fmt.Errorf("healthcheck_path is required for method %q", spec.Method)
	}
	return validatePort(spec)
}

func validateGRPC(spec *domain.ServiceSpec) error {
	if spec.HealthcheckPath == "" {
		return fmt.Errorf("healthcheck_path carries the gRPC health service name and is required for method %q", spec.Method)
	}
	return validatePort(spec)
}

// validateKafka only requires host:port reachability. kafka_topic is
// optional (§3): when absent, the probe's whole job is confirming the
// broker's controller metadata resolves; when present, a missing topic or
// one with no partitions degrades the probe rather than failing
// validation up front (§4.3).
func validateKafka(spec *domain.ServiceSpec) error {
	return validatePort(spec)
}
