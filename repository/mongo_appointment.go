package repository

import (
	"context"
	"errors"

	"NeuroScanAI/models"
	"NeuroScanAI/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAppointmentRepository struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepository(db *mongo.Database) *MongoAppointmentRepository {
	return &MongoAppointmentRepository{coll: db.Collection(util.AppointmentCollection)}
}

func (r *MongoAppointmentRepository) Create(ctx context.Context, apt *models.Appointment) error {
	if apt.ID == "" {
		apt.ID = NewID()
	}
	_, err := r.coll.InsertOne(ctx, apt)
	return err
}

func (r *MongoAppointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var apt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&apt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}

func appointmentFilterDoc(f AppointmentFilter) bson.M {
	filter := bson.M{}
	if f.DoctorID != "" {
		filter["doctorId"] = f.DoctorID
	}
	if f.PatientID != "" {
		filter["patientId"] = f.PatientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if !f.CreatedBefore.IsZero() {
		filter["createdAt"] = bson.M{"$lt": f.CreatedBefore}
	}
	return filter
}

// newest first, _id breaks ties between equal timestamps
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func (r *MongoAppointmentRepository) Find(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	cursor, err := r.coll.Find(ctx, appointmentFilterDoc(f), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	apts := []models.Appointment{}
	if err := cursor.All(ctx, &apts); err != nil {
		return nil, err
	}
	return apts, nil
}

func statusUpdateFilter(id string, from []models.AppointmentStatus) bson.M {
	filter := bson.M{"_id": id}
	if len(from) > 0 {
		filter["status"] = bson.M{"$in": from}
	}
	return filter
}

func (r *MongoAppointmentRepository) UpdateStatus(ctx context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus) (*models.Appointment, error) {
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var apt models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, statusUpdateFilter(id, from), update, opts).Decode(&apt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}
