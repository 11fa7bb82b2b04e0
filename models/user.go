package models

import "time"

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

const (
	MinDoctorAge = 25
	MaxDoctorAge = 80
)

// User is a registered account. Doctor-only fields are left empty for other roles.
type User struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email" bson:"email"`
	Password   string    `json:"-" bson:"password"`
	Role       Role      `json:"role" bson:"role"`
	Department string    `json:"department,omitempty" bson:"department,omitempty"`
	Bio        string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Image      string    `json:"image,omitempty" bson:"image,omitempty"`
	Age        int       `json:"age,omitempty" bson:"age,omitempty"`
	Experience string    `json:"experience,omitempty" bson:"experience,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserRef is the subset of a user embedded into appointment and chat responses.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// DoctorProfile is the public directory entry for a doctor.
type DoctorProfile struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
	Image      string `json:"image"`
	Age        int    `json:"age"`
	Experience string `json:"experience"`
}

func (u *User) Profile() DoctorProfile {
	return DoctorProfile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		Bio:        u.Bio,
		Image:      u.Image,
		Age:        u.Age,
		Experience: u.Experience,
	}
}

// Identity is the caller resolved from a verified credential.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Name string `json:"name"`
}
