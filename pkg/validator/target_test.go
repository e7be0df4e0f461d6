package validator

import (
	"testing"

	"svctopo/internal/domain"
)

func baseSpec(m domain.Method) *domain.ServiceSpec {
	return &domain.ServiceSpec{
		Host:               "example.com",
		Port:               443,
		Method:             m,
		PollingIntervalSec: 30,
	}
}

func TestValidateRejectsMissingHost(t *testing.T) {
	spec := baseSpec(domain.MethodTCP)
	spec.Host = ""
	if err := Validate(spec); err == nil {
		t.Fatal("want error for missing host")
	}
}

func TestValidateRejectsNonPositiveInterval(t *testing.T) {
	spec := baseSpec(domain.MethodTCP)
	spec.PollingIntervalSec = 0
	if err := Validate(spec); err == nil {
		t.Fatal("want error for zero polling interval")
	}
}

func TestValidateHTTPRequiresPath(t *testing.T) {
	spec := baseSpec(domain.MethodHTTP)
	if err := Validate(spec); err == nil {
		t.Fatal("want error for missing healthcheck_path")
	}
	spec.HealthcheckPath = "/health"
	if err := Validate(spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateHTTPRejectsBadExpectedStatus(t *testing.T) {
	spec := baseSpec(domain.MethodHTTPS)
	spec.HealthcheckPath = "/health"
	spec.ExpectedStatus = 9999
	if err := Validate(spec); err == nil {
		t.Fatal("want error for out-of-range expected_status")
	}
}

func TestValidateUDPRequiresSendData(t *testing.T) {
	spec := baseSpec(domain.MethodUDP)
	if err := Validate(spec); err == nil {
		t.Fatal("want error for missing udp_send_data")
	}
	spec.UDPSendData = "ping"
	if err := Validate(spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateICMPRejectsNegativeCount(t *testing.T) {
	spec := baseSpec(domain.MethodICMP)
	spec.ICMPPacketCount = -1
	if err := Validate(spec); err == nil {
		t.Fatal("want error for negative icmp_packet_count")
	}
}

func TestValidateDNSRequiresKnownQueryType(t *testing.T) {
	spec := baseSpec(domain.MethodDNS)
	if err := Validate(spec); err == nil {
		t.Fatal("want error for missing dns_query_type")
	}
	spec.DNSQueryType = domain.DNSTypeA
	if err := Validate(spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateGRPCRequiresHealthServiceName(t *testing.T) {
	spec := baseSpec(domain.MethodGRPC)
	if err := Validate(spec); err == nil {
		t.Fatal("want error for missing healthcheck_path")
	}
}

func TestValidateKafkaTopicIsOptional(t *testing.T) {
	spec := baseSpec(domain.MethodKafka)
	if err := Validate(spec); err != nil {
		t.Fatalf("kafka_topic is optional per the spec, unexpected error: %v", err)
	}
	spec.KafkaTopic = "orders"
	if err := Validate(spec); err != nil {
		t.Fatalf("unexpected error with kafka_topic set: %v", err)
	}
	spec.Port = 70000
	if err := Validate(spec); err == nil {
		t.Fatal("want error for out-of-range port regardless of kafka_topic")
	}
}

func TestValidatePortMethodsRejectOutOfRangePort(t *testing.T) {
	for _, m := range []domain.Method{domain.MethodRedis, domain.MethodMySQL, domain.MethodMongoDB, domain.MethodSSH, domain.MethodFTP, domain.MethodSMTP, domain.MethodPostgres} {
		spec := baseSpec(m)
		spec.Port = 70000
		if err := Validate(spec); err == nil {
			t.Fatalf("method %s: want error for out-of-range port", m)
		}
	}
}

func TestValidateUnknownMethodRejected(t *testing.T) {
	spec := baseSpec(domain.Method("carrier-pigeon"))
	if err := Validate(spec); err == nil {
		t.Fatal("want error for unknown method")
	}
}
