package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"NeuroScanAI/models"
	"NeuroScanAI/repository"
	"NeuroScanAI/util"

	log "github.com/sirupsen/logrus"
)

// UserLookup resolves user references for listings.
type UserLookup interface {
	FetchUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

type AppointmentService struct {
	appointments repository.AppointmentRepository
	users        UserLookup
	strict       bool
	now          func() time.Time
}

// NewAppointmentService builds the service. With strict off, accept and reject
// overwrite the status whatever it currently is.
func NewAppointmentService(appointments repository.AppointmentRepository, users UserLookup, strict bool) *AppointmentService {
	return &AppointmentService{appointments: appointments, users: users, strict: strict, now: time.Now}
}

type CreateAppointmentInput struct {
	PatientID       string      `json:"patientId" binding:"required"`
	DoctorID        string      `json:"doctorId" binding:"required"`
	PatientName     string      `json:"patientName"`
	PatientAge      models.Text `json:"patientAge"`
	Department      string      `json:"department"`
	DoctorName      string      `json:"doctorName"`
	AppointmentType string      `json:"appointmentType" binding:"omitempty,oneof=online offline"`
	Date            string      `json:"date" binding:"required_if=AppointmentType offline"`
	Time            string      `json:"time" binding:"required_if=AppointmentType offline"`
}

func (CreateAppointmentInput) fieldMessages() fieldMessages {
	return fieldMessages{
		"patientId":       util.MISSING_REQUIRED_FIELDS,
		"doctorId":        util.MISSING_REQUIRED_FIELDS,
		"appointmentType": util.INVALID_APPOINTMENT_TYPE,
		"date":            util.DATE_AND_TIME_REQUIRED,
		"time":            util.DATE_AND_TIME_REQUIRED,
	}
}

/*
* Trim the inputs
* appointmentType defaults to offline, so a bare request needs a date and a time
* Then check the binding tags
 */
func normalizeAppointmentInput(in *CreateAppointmentInput) (models.AppointmentType, error) {
	in.PatientID = strings.TrimSpace(in.PatientID)
	in.DoctorID = strings.TrimSpace(in.DoctorID)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.AppointmentType = strings.TrimSpace(in.AppointmentType)
	if in.AppointmentType == "" {
		in.AppointmentType = string(models.AppointmentOffline)
	}
	if err := validateInput(in); err != nil {
		return "", err
	}
	return models.AppointmentType(in.AppointmentType), nil
}

/*
* Validate the input
* Build a pending appointment
* Insert it
 */
func (s *AppointmentService) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {
	kind, err := normalizeAppointmentInput(&in)
	if err != nil {
		log.Println("Error from normalizeAppointmentInput:", err)
		return nil, err
	}

	now := s.now()
	apt := &models.Appointment{
		PatientID:       in.PatientID,
		DoctorID:        in.DoctorID,
		PatientName:     strings.TrimSpace(in.PatientName),
		PatientAge:      strings.TrimSpace(string(in.PatientAge)),
		Department:      strings.TrimSpace(in.Department),
		DoctorName:      strings.TrimSpace(in.DoctorName),
		AppointmentType: kind,
		Date:            in.Date,
		Time:            in.Time,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.appointments.Create(ctx, apt); err != nil {
		log.Println("Error from appointments.Create:", err)
		return nil, err
	}
	log.WithFields(log.Fields{"appointment_id": apt.ID, "doctor_id": apt.DoctorID}).Info("Appointment created")
	return apt, nil
}

func contactRef(u *models.User) *models.UserRef {
	if u == nil {
		return nil
	}
	return &models.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s *AppointmentService) resolve(ctx context.Context, apts []models.Appointment, pick func(models.Appointment) string) (map[string]*models.User, error) {
	ids := make([]string, 0, len(apts))
	for _, a := range apts {
		ids = append(ids, pick(a))
	}
	return s.users.FetchUsersByIDs(ctx, ids)
}

/*
* Filter by doctor and the optional status
* Resolve the patient of every appointment
* Newest first
 */
func (s *AppointmentService) FetchAppointmentsForDoctor(ctx context.Context, doctorID, status string) ([]models.AppointmentView, error) {
	if strings.TrimSpace(doctorID) == "" {
		return nil, missingField("doctorId", util.MISSING_REQUIRED_FIELDS)
	}
	st := models.AppointmentStatus(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, &ValidationError{Field: "status", Message: util.INVALID_STATUS_FILTER}
	}

	apts, err := s.appointments.Find(ctx, repository.AppointmentFilter{DoctorID: doctorID, Status: st})
	if err != nil {
		log.Println("Error from appointments.Find:", err)
		return nil, err
	}
	patients, err := s.resolve(ctx, apts, func(a models.Appointment) string { return a.PatientID })
	if err != nil {
		return nil, err
	}

	views := make([]models.AppointmentView, 0, len(apts))
	for _, a := range apts {
		views = append(views, models.AppointmentView{Appointment: a, Patient: contactRef(patients[a.PatientID])})
	}
	return views, nil
}

func (s *AppointmentService) FetchAppointmentsForPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, missingField("patientId", util.MISSING_REQUIRED_FIELDS)
	}

	apts, err := s.appointments.Find(ctx, repository.AppointmentFilter{PatientID: patientID})
	if err != nil {
		log.Println("Error from appointments.Find:", err)
		return nil, err
	}
	doctors, err := s.resolve(ctx, apts, func(a models.Appointment) string { return a.DoctorID })
	if err != nil {
		return nil, err
	}

	views := make([]models.AppointmentView, 0, len(apts))
	for _, a := range apts {
		views = append(views, models.AppointmentView{Appointment: a, Doctor: contactRef(doctors[a.DoctorID])})
	}
	return views, nil
}

func (s *AppointmentService) AcceptAppointment(ctx context.Context, caller models.Identity, id string) (*models.Appointment, error) {
	return s.changeStatus(ctx, caller, id, models.ActionAccept)
}

func (s *AppointmentService) RejectAppointment(ctx context.Context, caller models.Identity, id string) (*models.Appointment, error) {
	return s.changeStatus(ctx, caller, id, models.ActionReject)
}

func (s *AppointmentService) fetch(ctx context.Context, id string) (*models.Appointment, error) {
	apt, err := s.appointments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: util.APPOINTMENT_NOT_FOUND}
	}
	if err != nil {
		log.Println("Error from appointments.FindByID:", err)
		return nil, err
	}
	return apt, nil
}

/*
* Fetch the appointment and check the caller is its doctor
* Strict: apply the transition as a compare-and-set on the current status,
* re-reading once if another writer got there first
* Legacy: overwrite unconditionally
 */
func (s *AppointmentService) changeStatus(ctx context.Context, caller models.Identity, id string, action models.StatusAction) (*models.Appointment, error) {
	apt, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.ID != apt.DoctorID {
		log.WithFields(log.Fields{"appointment_id": id, "caller": caller.ID}).Warn("Status change by non-owner rejected")
		return nil, &ForbiddenError{Message: util.NOT_APPOINTMENT_DOCTOR}
	}

	if !s.strict {
		updated, err := s.appointments.UpdateStatus(ctx, id, nil, action.Target())
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Message: util.APPOINTMENT_NOT_FOUND}
		}
		return updated, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		next, err := models.Transition(apt.Status, action)
		if err != nil {
			return nil, &TransitionError{From: apt.Status, To: action.Target(), Err: err}
		}
		if next == apt.Status {
			return apt, nil
		}

		updated, err := s.appointments.UpdateStatus(ctx, id, []models.AppointmentStatus{apt.Status}, next)
		if err == nil {
			log.WithFields(log.Fields{"appointment_id": id, "status": next}).Info("Appointment status changed")
			return updated, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			log.Println("Error from appointments.UpdateStatus:", err)
			return nil, err
		}
		if apt, err = s.fetch(ctx, id); err != nil {
			return nil, err
		}
	}
	next, err := models.Transition(apt.Status, action)
	if err == nil && next == apt.Status {
		return apt, nil
	}
	return nil, &TransitionError{From: apt.Status, To: action.Target(), Err: models.ErrInvalidTransition}
}
