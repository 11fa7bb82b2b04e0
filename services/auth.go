package services

import (
	"context"
	"errors"
	"strings"

	"NeuroScanAI/config/jwt"
	"NeuroScanAI/models"
	"NeuroScanAI/repository"
	"NeuroScanAI/util"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"omitempty,oneof=patient doctor"`
	Department string `json:"department" binding:"required_if=Role doctor"`
	Bio        string `json:"bio" binding:"required_if=Role doctor"`
	Image      string `json:"image" binding:"required_if=Role doctor"`
	Age        int    `json:"age" binding:"required_if=Role doctor,omitempty,min=25,max=80"`
	Experience string `json:"experience" binding:"required_if=Role doctor"`
}

func (RegisterInput) fieldMessages() fieldMessages {
	return fieldMessages{
		"name":            util.NAME_EMAIL_PASSWORD_REQUIRED,
		"email":           util.NAME_EMAIL_PASSWORD_REQUIRED,
		"email.email":     util.INVALID_EMAIL,
		"password":        util.NAME_EMAIL_PASSWORD_REQUIRED,
		"role":            util.INVALID_ROLE,
		"department":      util.DOCTOR_FIELDS_REQUIRED,
		"bio":             util.DOCTOR_FIELDS_REQUIRED,
		"image":           util.DOCTOR_FIELDS_REQUIRED,
		"age":             util.DOCTOR_AGE_OUT_OF_RANGE,
		"age.required_if": util.DOCTOR_FIELDS_REQUIRED,
		"experience":      util.DOCTOR_FIELDS_REQUIRED,
	}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (LoginInput) fieldMessages() fieldMessages {
	return fieldMessages{
		"email":    util.EMAIL_AND_PASSWORD_REQUIRED,
		"password": util.EMAIL_AND_PASSWORD_REQUIRED,
	}
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

/*
* Trim the inputs and lower the email
* Role defaults to patient, admins are never self-registered
* Then check the binding tags
 */
func normalizeRegisterInput(in *RegisterInput) (models.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.TrimSpace(in.Role)
	in.Department = strings.TrimSpace(in.Department)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Image = strings.TrimSpace(in.Image)
	in.Experience = strings.TrimSpace(in.Experience)
	if in.Role == "" {
		in.Role = string(models.RolePatient)
	}
	if err := validateInput(in); err != nil {
		return "", err
	}
	return models.Role(in.Role), nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

/*
* Validate the input
* Check the email is free
* Hash the password and save the user
* Cache the user and issue a token
 */
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role, err := normalizeRegisterInput(&in)
	if err != nil {
		log.Println("Error from normalizeRegisterInput:", err)
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, &ConflictError{Message: util.USER_ALREADY_EXISTS}
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Println("Error from FindByEmail:", err)
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Println("Error from HashPassword:", err)
		return nil, err
	}

	now := s.now()
	user := &models.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashed,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role == models.RoleDoctor {
		user.Department = in.Department
		user.Bio = in.Bio
		user.Image = in.Image
		user.Age = in.Age
		user.Experience = in.Experience
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Message: util.USER_ALREADY_EXISTS}
		}
		log.Println("Error from users.Create:", err)
		return nil, err
	}
	s.cacheUser(ctx, user)

	return s.issue(user)
}

/*
* Find the user by email
* Compare the bcrypt hash
* Issue a token
 */
func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &AuthError{Message: util.INVALID_CREDENTIALS}
	}
	if err != nil {
		log.Println("Error from FindByEmail:", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		log.WithField("user_id", user.ID).Warn("Password mismatch")
		return nil, &AuthError{Message: util.INVALID_CREDENTIALS}
	}
	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := jwt.GenerateJWT(user.ID, string(user.Role), s.secret, s.ttl)
	if err != nil {
		log.Println("Error while generating the token:", err)
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
