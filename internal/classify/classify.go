// Package classify turns a raw protocol outcome into a ServiceStatus,
// applying the HTTP status-mapping / expected-status policy from the spec.
package classify

import (
	"strconv"

	"svctopo/internal/domain"
)

// Classify derives the terminal ServiceStatus for one probe outcome.
// Non-HTTP protocols already return a terminal status and pass through
// unchanged; HTTP/HTTPS go through statusMapping, then expectedStatus,
// then the 429/503-degraded fallback.
func Classify(spec *domain.ServiceSpec, outcome domain.ProbeOutcome) domain.ServiceStatus {
	if spec.Method != domain.MethodHTTP && spec.Method != domain.MethodHTTPS {
		return outcome.Status
	}

	if outcome.Err != nil {
		return domain.StatusDead
	}

	code := strconv.Itoa(outcome.StatusCode)
	if tag, ok := spec.StatusMapping[code]; ok {
		switch tag {
		case "alive":
			return domain.StatusAlive
		case "degraded":
			return domain.StatusDegraded
		case "dead":
			return domain.StatusDead
		}
	}

	if outcome.StatusCode == spec.ExpectedStatus {
		return domain.StatusAlive
	}

	if outcome.StatusCode == 429 || outcome.StatusCode == 503 {
		return domain.StatusDegraded
	}

	return domain.StatusDead
}
