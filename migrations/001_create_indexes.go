package migrations

import (
	"context"
	"fmt"

	"NeuroScanAI/util"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		util.UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
			{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("role")},
		},
		util.AppointmentCollection: {
			{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("doctor_status_created")},
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("patient_created")},
		},
		util.ChatCollection: {
			{Keys: bson.D{{Key: "threadKey", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("thread_created")},
		},
	}
}

// CreateIndexes is idempotent: existing indexes with the same keys and options are left alone.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexModels() {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		log.Printf("Migration applied: indexes %v on %s\n", names, coll)
	}
	return nil
}
