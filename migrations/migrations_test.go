package migrations

import (
	"context"
	"testing"

	"NeuroScanAI/models"
	"NeuroScanAI/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestIndexModels(t *testing.T) {
	idx := indexModels()
	require.Len(t, idx, 3)

	users := idx[util.UserCollection]
	require.NotEmpty(t, users)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, users[0].Keys)
	require.NotNil(t, users[0].Options.Unique)
	assert.True(t, *users[0].Options.Unique)

	chats := idx[util.ChatCollection]
	require.Len(t, chats, 1)
	assert.Equal(t, bson.D{{Key: "threadKey", Value: 1}, {Key: "createdAt", Value: 1}}, chats[0].Keys)
}

func TestStepsOrdered(t *testing.T) {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.name)
	}
	assert.Equal(t, []string{"001_create_indexes", "002_default_appointment_type", "003_backfill_thread_keys"}, names)
}

func TestBackfillThreadKeys(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("filters on the stored ObjectID", func(mt *mtest.T) {
		coll := mt.DB.Collection(util.ChatCollection)
		legacyID := primitive.NewObjectID()
		doctorID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".chats", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: legacyID}, {Key: "doctorId", Value: doctorID}, {Key: "patientId", Value: "p1"}},
			),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		updated, err := backfillThreadKeys(ctx, coll)
		require.NoError(t, err)
		assert.Equal(t, 1, updated)

		mt.GetStartedEvent() // find
		update := mt.GetStartedEvent().Command
		stmts, err := update.Lookup("updates").Array().Values()
		require.NoError(t, err)
		require.Len(t, stmts, 1)
		stmt := stmts[0].Document()
		oid, ok := stmt.Lookup("q", "_id").ObjectIDOK()
		require.True(t, ok)
		assert.Equal(t, legacyID, oid)
		assert.Equal(t, models.ThreadKey(doctorID.Hex(), "p1"), stmt.Lookup("u", "$set", "threadKey").StringValue())
	})

	mt.Run("unmatched updates are not counted", func(mt *mtest.T) {
		coll := mt.DB.Collection(util.ChatCollection)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".chats", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "m1"}, {Key: "doctorId", Value: "d1"}, {Key: "patientId", Value: "p1"}},
				bson.D{{Key: "_id", Value: "m2"}, {Key: "patientId", Value: "p1"}},
			),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		updated, err := backfillThreadKeys(ctx, coll)
		require.NoError(t, err)
		assert.Equal(t, 0, updated)
	})
}
