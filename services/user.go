package services

import (
	"context"
	"errors"
	"time"

	"NeuroScanAI/config/redis"
	"NeuroScanAI/models"
	"NeuroScanAI/repository"
	"NeuroScanAI/util"

	log "github.com/sirupsen/logrus"
)

type UserService struct {
	users  repository.UserRepository
	cache  redis.Cache
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewUserService(users repository.UserRepository, cache redis.Cache, secret string, ttl time.Duration) *UserService {
	if cache == nil {
		cache = redis.NoopCache{}
	}
	return &UserService{users: users, cache: cache, secret: secret, ttl: ttl, now: time.Now}
}

func (s *UserService) cacheUser(ctx context.Context, user *models.User) {
	if err := s.cache.SetCache(ctx, util.UserKey+user.ID, user); err != nil {
		log.Println("Error from SetCache:", err)
	}
}

/*
* Look in the cache first
* Fall back to the store and refill the cache
* An unreadable entry is evicted
* Cached copies carry no password hash
 */
func (s *UserService) FetchUserByID(ctx context.Context, id string) (*models.User, error) {
	var cached models.User
	found, err := s.cache.GetCache(ctx, util.UserKey+id, &cached)
	if err != nil {
		log.Println("Error from GetCache:", err)
		if err := s.cache.DeleteCache(ctx, util.UserKey+id); err != nil {
			log.Println("Error from DeleteCache:", err)
		}
	}
	if found {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: util.USER_NOT_FOUND}
	}
	if err != nil {
		log.Println("Error from FindByID:", err)
		return nil, err
	}
	s.cacheUser(ctx, user)
	return user, nil
}

// FetchUsersByIDs resolves references in one round trip; unknown ids are absent from the map.
func (s *UserService) FetchUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	users, err := s.users.FindByIDs(ctx, unique)
	if err != nil {
		log.Println("Error from FindByIDs:", err)
		return nil, err
	}
	return users, nil
}

// ResolveIdentity backs the access-control gate.
func (s *UserService) ResolveIdentity(ctx context.Context, id string) (*models.Identity, error) {
	user, err := s.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.Identity{ID: user.ID, Role: user.Role, Name: user.Name}, nil
}
