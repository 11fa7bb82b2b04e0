package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type step struct {
	name string
	run  func(context.Context, *mongo.Database) error
}

var steps = []step{
	{"001_create_indexes", CreateIndexes},
	{"002_default_appointment_type", DefaultAppointmentFields},
	{"003_backfill_thread_keys", BackfillThreadKeys},
}

// Run applies every step in order and stops at the first failure.
func Run(ctx context.Context, db *mongo.Database) error {
	for _, s := range steps {
		if err := s.run(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
