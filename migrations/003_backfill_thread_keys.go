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

// legacyChat keeps _id and the participant ids raw: older records hold ObjectIDs there.
type legacyChat struct {
	ID        bson.RawValue `bson:"_id"`
	DoctorID  bson.RawValue `bson:"doctorId"`
	PatientID bson.RawValue `bson:"patientId"`
}

func idString(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return ""
}

func BackfillThreadKeys(ctx context.Context, db *mongo.Database) error {
	updated, err := backfillThreadKeys(ctx, db.Collection(util.ChatCollection))
	if err != nil {
		return err
	}
	log.Printf("Migration applied: %d chat messages keyed\n", updated)
	return nil
}

/*
* Find chat messages stored without a thread key
* Compute the key from the doctor and patient ids
* Write it back filtering on the _id exactly as stored
* Only matched documents are counted
 */
func backfillThreadKeys(ctx context.Context, coll *mongo.Collection) (int, error) {
	cur, err := coll.Find(ctx, bson.M{"threadKey": bson.M{"$exists": false}})
	if err != nil {
		return 0, fmt.Errorf("find unkeyed messages: %w", err)
	}
	defer cur.Close(ctx)

	var updated int
	for cur.Next(ctx) {
		var msg legacyChat
		if err := cur.Decode(&msg); err != nil {
			log.Println("Invalid chat record:", err)
			continue
		}
		doctorID, patientID := idString(msg.DoctorID), idString(msg.PatientID)
		if doctorID == "" || patientID == "" {
			log.Println("Chat record without participants:", idString(msg.ID))
			continue
		}
		res, err := coll.UpdateOne(ctx,
			bson.M{"_id": msg.ID},
			bson.M{"$set": bson.M{"threadKey": models.ThreadKey(doctorID, patientID)}},
		)
		if err != nil {
			return updated, fmt.Errorf("set thread key on %s: %w", idString(msg.ID), err)
		}
		if res.MatchedCount == 0 {
			log.Println("Chat record vanished before keying:", idString(msg.ID))
			continue
		}
		updated++
	}
	return updated, cur.Err()
}
