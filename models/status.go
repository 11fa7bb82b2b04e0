package models

import (
	"errors"
	"fmt"
)

type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusAccepted AppointmentStatus = "accepted"
	StatusRejected AppointmentStatus = "rejected"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

func (s AppointmentStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type StatusAction string

const (
	ActionAccept StatusAction = "accept"
	ActionReject StatusAction = "reject"
)

// Target is the status an action moves an appointment to.
func (a StatusAction) Target() AppointmentStatus {
	if a == ActionAccept {
		return StatusAccepted
	}
	return StatusRejected
}

var ErrInvalidTransition = errors.New("invalid status transition")

// Transition returns the status reached by applying action to current.
// Only pending may move forward. Re-applying the action that produced the
// current terminal status yields the same status, so repeats are idempotent.
func Transition(current AppointmentStatus, action StatusAction) (AppointmentStatus, error) {
	target := action.Target()
	if current == StatusPending {
		return target, nil
	}
	if current.Terminal() && current == target {
		return current, nil
	}
	return current, fmt.Errorf("%w: cannot %s a %s appointment", ErrInvalidTransition, action, current)
}
