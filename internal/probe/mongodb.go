package probe

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"svctopo/internal/domain"
)

// mongoProbe opens a client to host:port and issues the driver's PING
// equivalent, client.Ping against the primary read preference.
func mongoProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	uri := fmt.Sprintf("mongodb://%s:%d", spec.Host, spec.Port)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return deadOnErr(fmt.Errorf("mongo connect: %w", err))
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return deadOnErr(fmt.Errorf("mongo ping: %w", err))
	}

	return alive()
}
