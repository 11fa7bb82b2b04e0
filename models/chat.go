package models

import (
	"sort"
	"strings"
	"time"
)

type ChatMessage struct {
	ID         string    `json:"_id" bson:"_id"`
	ThreadKey  string    `json:"threadKey" bson:"threadKey"`
	DoctorID   string    `json:"doctorId" bson:"doctorId"`
	PatientID  string    `json:"patientId" bson:"patientId"`
	Message    string    `json:"message" bson:"message"`
	SenderID   string    `json:"-" bson:"sender"`
	SenderRole Role      `json:"senderRole" bson:"senderRole"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// ChatMessageView carries the resolved sender next to the stored message.
type ChatMessageView struct {
	ChatMessage
	Sender *UserRef `json:"sender"`
}

// ThreadKey identifies the conversation between two users independently of
// the order the ids are given in.
func ThreadKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, ":")
}
