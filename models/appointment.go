package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type AppointmentType string

const (
	AppointmentOnline  AppointmentType = "online"
	AppointmentOffline AppointmentType = "offline"
)

func (t AppointmentType) Valid() bool {
	return t == AppointmentOnline || t == AppointmentOffline
}

type Appointment struct {
	ID              string            `json:"_id" bson:"_id"`
	PatientID       string            `json:"patientId" bson:"patientId"`
	DoctorID        string            `json:"doctorId" bson:"doctorId"`
	PatientName     string            `json:"patientName" bson:"patientName"`
	PatientAge      string            `json:"patientAge" bson:"patientAge"`
	Department      string            `json:"department" bson:"department"`
	DoctorName      string            `json:"doctorName" bson:"doctorName"`
	AppointmentType AppointmentType   `json:"appointmentType" bson:"appointmentType"`
	Date            string            `json:"date,omitempty" bson:"date,omitempty"`
	Time            string            `json:"time,omitempty" bson:"time,omitempty"`
	Status          AppointmentStatus `json:"status" bson:"status"`
	CreatedAt       time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// AppointmentView is an appointment with its counterpart resolved.
type AppointmentView struct {
	Appointment
	Patient *UserRef `json:"patient,omitempty"`
	Doctor  *UserRef `json:"doctor,omitempty"`
}

// Text accepts either a JSON string or a JSON number, so clients may send
// an age as 42 or "42".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*t = Text(n.String())
	return nil
}
