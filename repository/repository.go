package repository

import (
	"context"
	"errors"
	"time"

	"NeuroScanAI/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

// AppointmentFilter selects appointments; zero fields are ignored.
type AppointmentFilter struct {
	DoctorID      string
	PatientID     string
	Status        models.AppointmentStatus
	CreatedBefore time.Time
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	// Find returns matches newest first.
	Find(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	// UpdateStatus sets the status when the stored one is in from (any status
	// when from is empty) and returns the updated record. ErrNotFound covers
	// both a missing id and a status outside from.
	UpdateStatus(ctx context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus) (*models.Appointment, error)
}

type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	// FindThread returns the messages of a thread oldest first.
	FindThread(ctx context.Context, threadKey string) ([]models.ChatMessage, error)
}

func NewID() string {
	return primitive.NewObjectID().Hex()
}

var now = time.Now
