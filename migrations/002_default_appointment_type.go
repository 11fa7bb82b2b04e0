package migrations

import (
	"context"
	"fmt"

	"NeuroScanAI/models"
	"NeuroScanAI/util"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultAppointmentFields fills appointmentType and status on records written before they existed.
func DefaultAppointmentFields(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(util.AppointmentCollection)
	defaults := []struct {
		field string
		value string
	}{
		{"appointmentType", string(models.AppointmentOffline)},
		{"status", string(models.StatusPending)},
	}
	for _, d := range defaults {
		result, err := coll.UpdateMany(
			ctx,
			bson.M{d.field: bson.M{"$exists": false}},
			bson.M{"$set": bson.M{d.field: d.value}},
		)
		if err != nil {
			return fmt.Errorf("default %s: %w", d.field, err)
		}
		log.Printf("Migration applied: %d documents updated with %s\n", result.ModifiedCount, d.field)
	}
	return nil
}
