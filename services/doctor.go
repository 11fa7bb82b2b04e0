package services

import (
	"context"

	"NeuroScanAI/models"

	log "github.com/sirupsen/logrus"
)

/*
* Fetch every user with the doctor role
* Format them as public profiles
 */
func (s *UserService) FetchAllDoctors(ctx context.Context) ([]models.DoctorProfile, error) {
	doctors, err := s.users.FindByRole(ctx, models.RoleDoctor)
	if err != nil {
		log.Println("Error from FindByRole:", err)
		return nil, err
	}
	profiles := make([]models.DoctorProfile, 0, len(doctors))
	for i := range doctors {
		profiles = append(profiles, doctors[i].Profile())
	}
	return profiles, nil
}
