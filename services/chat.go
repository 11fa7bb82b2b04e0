package services

import (
	"context"
	"strings"
	"time"

	"NeuroScanAI/models"
	"NeuroScanAI/repository"
	"NeuroScanAI/util"

	log "github.com/sirupsen/logrus"
)

type ChatService struct {
	chats repository.ChatRepository
	users UserLookup
	now   func() time.Time
}

func NewChatService(chats repository.ChatRepository, users UserLookup) *ChatService {
	return &ChatService{chats: chats, users: users, now: time.Now}
}

// SendMessageInput has no sender fields: the author always comes from the verified identity.
type SendMessageInput struct {
	Message   string `json:"message" binding:"required"`
	DoctorID  string `json:"doctorId" binding:"required"`
	PatientID string `json:"patientId" binding:"required"`
}

func (SendMessageInput) fieldMessages() fieldMessages {
	return fieldMessages{
		"message":   util.MISSING_REQUIRED_FIELDS,
		"doctorId":  util.MISSING_REQUIRED_FIELDS,
		"patientId": util.MISSING_REQUIRED_FIELDS,
	}
}

/*
* Every field is required
* The sender must be the doctor or the patient named in the input
* Sender and role are stamped from the identity
 */
func (s *ChatService) SendMessage(ctx context.Context, sender models.Identity, in SendMessageInput) (*models.ChatMessageView, error) {
	in.DoctorID = strings.TrimSpace(in.DoctorID)
	in.PatientID = strings.TrimSpace(in.PatientID)
	if strings.TrimSpace(in.Message) == "" {
		in.Message = ""
	}
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	switch sender.Role {
	case models.RoleDoctor:
		if sender.ID != in.DoctorID {
			return nil, &ForbiddenError{Message: util.NOT_THREAD_PARTICIPANT}
		}
	case models.RolePatient:
		if sender.ID != in.PatientID {
			return nil, &ForbiddenError{Message: util.NOT_THREAD_PARTICIPANT}
		}
	default:
		return nil, &ForbiddenError{Message: util.ROLE_CANNOT_CHAT}
	}

	msg := &models.ChatMessage{
		ThreadKey:  models.ThreadKey(in.DoctorID, in.PatientID),
		DoctorID:   in.DoctorID,
		PatientID:  in.PatientID,
		Message:    in.Message,
		SenderID:   sender.ID,
		SenderRole: sender.Role,
		CreatedAt:  s.now(),
	}
	if err := s.chats.Create(ctx, msg); err != nil {
		log.Println("Error from chats.Create:", err)
		return nil, err
	}
	return &models.ChatMessageView{
		ChatMessage: *msg,
		Sender:      &models.UserRef{ID: sender.ID, Name: sender.Name, Role: sender.Role},
	}, nil
}

/*
* Both ids are required, in either order
* Only the two participants or an admin may read
* Oldest first, senders resolved
 */
func (s *ChatService) FetchMessages(ctx context.Context, caller models.Identity, doctorID, patientID string) ([]models.ChatMessageView, error) {
	doctorID = strings.TrimSpace(doctorID)
	patientID = strings.TrimSpace(patientID)
	if doctorID == "" || patientID == "" {
		return nil, missingField("doctorId", util.MISSING_DOCTOR_OR_PATIENT_ID)
	}
	if caller.Role != models.RoleAdmin && caller.ID != doctorID && caller.ID != patientID {
		return nil, &ForbiddenError{Message: util.NOT_THREAD_PARTICIPANT}
	}

	msgs, err := s.chats.FindThread(ctx, models.ThreadKey(doctorID, patientID))
	if err != nil {
		log.Println("Error from chats.FindThread:", err)
		return nil, err
	}

	ids := make([]string, 0, 2)
	for _, m := range msgs {
		ids = append(ids, m.SenderID)
	}
	senders, err := s.users.FetchUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ChatMessageView, 0, len(msgs))
	for _, m := range msgs {
		ref := &models.UserRef{ID: m.SenderID, Role: m.SenderRole}
		if u, ok := senders[m.SenderID]; ok {
			ref.Name = u.Name
			ref.Role = u.Role
		}
		views = append(views, models.ChatMessageView{ChatMessage: m, Sender: ref})
	}
	return views, nil
}
