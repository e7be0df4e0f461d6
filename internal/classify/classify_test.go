package classify

import (
	"errors"
	"testing"

	"svctopo/internal/domain"
)

func TestClassifyNonHTTPPassesThrough(t *testing.T) {
	spec := &domain.ServiceSpec{Method: domain.MethodTCP}
	got := Classify(spec, domain.ProbeOutcome{Status: domain.StatusAlive})
	if got != domain.StatusAlive {
		t.Fatalf("want alive, got %s", got)
	}
}

func TestClassifyHTTPExpectedStatus(t *testing.T) {
	spec := &domain.ServiceSpec{Method: domain.MethodHTTP, ExpectedStatus: 200}
	got := Classify(spec, domain.ProbeOutcome{StatusCode: 200})
	if got != domain.StatusAlive {
		t.Fatalf("want alive, got %s", got)
	}
}

func TestClassifyHTTPMappingWinsOverExpected(t *testing.T) {
	spec := &domain.ServiceSpec{
		Method:         domain.MethodHTTPS,
		ExpectedStatus: 429,
		StatusMapping:  map[string]string{"429": "degraded"},
	}
	got := Classify(spec, domain.ProbeOutcome{StatusCode: 429})
	if got != domain.StatusDegraded {
		t.Fatalf("want degraded, got %s", got)
	}
}

func TestClassifyHTTPDegradedFallback(t *testing.T) {
	spec := &domain.ServiceSpec{Method: domain.MethodHTTP, ExpectedStatus: 200}
	for _, code := range []int{429, 503} {
		got := Classify(spec, domain.ProbeOutcome{StatusCode: code})
		if got != domain.StatusDegraded {
			t.Fatalf("code %d: want degraded, got %s", code, got)
		}
	}
}

func TestClassifyHTTPUnmappedDead(t *testing.T) {
	spec := &domain.ServiceSpec{Method: domain.MethodHTTP, ExpectedStatus: 200}
	got := Classify(spec, domain.ProbeOutcome{StatusCode: 500})
	if got != domain.StatusDead {
		t.Fatalf("want dead, got %s", got)
	}
}

func TestClassifyHTTPErrorIsDead(t *testing.T) {
	spec := &domain.ServiceSpec{Method: domain.MethodHTTPS, ExpectedStatus: 200}
	got := Classify(spec, domain.ProbeOutcome{Err: errors.New("dial tcp: refused")})
	if got != domain.StatusDead {
		t.Fatalf("want dead, got %s", got)
	}
}
