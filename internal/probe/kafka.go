package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"

	"svctopo/internal/domain"
)

func timeUntil(deadline time.Time) time.Duration {
	d := time.Until(deadline)
	if d <= 0 {
		return time.Millisecond
	}
	return d
}

// kafkaProbe opens a broker client with clientId = kafkaClientId
// (defaulting to "service-weaver-healthcheck") and requires controller
// metadata to succeed. A configured kafkaTopic that is missing or has no
// partitions degrades rather than fails outright.
func kafkaProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	clientID := spec.KafkaClientID
	if clientID == "" {
		clientID = "service-weaver-healthcheck"
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	if deadline, ok := ctx.Deadline(); ok {
		cfg.Net.DialTimeout = timeUntil(deadline)
	}

	addr := fmt.Sprintf("%s:%d", spec.Host, spec.Port)
	client, err := sarama.NewClient([]string{addr}, cfg)
	if err != nil {
		return deadOnErr(fmt.Errorf("kafka connect: %w", err))
	}
	defer client.Close()

	if _, err := client.Controller(); err != nil {
		return deadOnErr(fmt.Errorf("kafka controller metadata: %w", err))
	}

	if spec.KafkaTopic == "" {
		return alive()
	}

	partitions, err := client.Partitions(spec.KafkaTopic)
	if err != nil || len(partitions) == 0 {
		return degraded(fmt.Errorf("kafka topic %q missing or has no partitions", spec.KafkaTopic))
	}

	return alive()
}
