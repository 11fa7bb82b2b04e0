package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"NeuroScanAI/models"
)

// In-memory repositories back the service when MongoDB is disabled.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = NewID()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = &u
		}
	}
	return out, nil
}

func (r *MemoryUserRepository) FindByRole(_ context.Context, role models.Role) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := []models.User{}
	for _, u := range r.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type MemoryAppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]models.Appointment
}

func NewMemoryAppointmentRepository() *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{appointments: make(map[string]models.Appointment)}
}

func (r *MemoryAppointmentRepository) Create(_ context.Context, apt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if apt.ID == "" {
		apt.ID = NewID()
	}
	r.appointments[apt.ID] = *apt
	return nil
}

func (r *MemoryAppointmentRepository) FindByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	apt, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &apt, nil
}

func (f AppointmentFilter) matches(apt models.Appointment) bool {
	if f.DoctorID != "" && apt.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID != "" && apt.PatientID != f.PatientID {
		return false
	}
	if f.Status != "" && apt.Status != f.Status {
		return false
	}
	if !f.CreatedBefore.IsZero() && !apt.CreatedAt.Before(f.CreatedBefore) {
		return false
	}
	return true
}

func (r *MemoryAppointmentRepository) Find(_ context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	apts := []models.Appointment{}
	for _, apt := range r.appointments {
		if f.matches(apt) {
			apts = append(apts, apt)
		}
	}
	sort.Slice(apts, func(i, j int) bool {
		if !apts[i].CreatedAt.Equal(apts[j].CreatedAt) {
			return apts[i].CreatedAt.After(apts[j].CreatedAt)
		}
		return apts[i].ID > apts[j].ID
	})
	return apts, nil
}

func (r *MemoryAppointmentRepository) UpdateStatus(_ context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apt, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	if len(from) > 0 && !containsStatus(from, apt.Status) {
		return nil, ErrNotFound
	}
	apt.Status = to
	apt.UpdatedAt = now()
	r.appointments[id] = apt
	return &apt, nil
}

func containsStatus(list []models.AppointmentStatus, s models.AppointmentStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type MemoryChatRepository struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
}

func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{}
}

func (r *MemoryChatRepository) Create(_ context.Context, msg *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.ID == "" {
		msg.ID = NewID()
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *MemoryChatRepository) FindThread(_ context.Context, threadKey string) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msgs := []models.ChatMessage{}
	for _, m := range r.messages {
		if m.ThreadKey == threadKey {
			msgs = append(msgs, m)
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}
