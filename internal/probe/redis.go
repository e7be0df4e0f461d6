package probe

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"svctopo/internal/domain"
)

// redisProbe opens a client and issues PING. Any success is Alive.
func redisProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", spec.Host, spec.Port),
	})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		return deadOnErr(fmt.Errorf("redis ping: %w", err))
	}

	return alive()
}
