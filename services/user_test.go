package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"NeuroScanAI/config/jwt"
	"NeuroScanAI/models"
	"NeuroScanAI/repository"
	"NeuroScanAI/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func doctorInput() RegisterInput {
	return RegisterInput{
		Name: "Dr Strange", Email: " Strange@Sanctum.io ", Password: "pw",
		Role: "doctor", Department: "Neurology", Bio: "bio", Image: "img.png", Age: 45, Experience: "10 years",
	}
}

func TestRegister_Doctor(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository(), nil, "secret", time.Hour)

	res, err := svc.Register(context.Background(), doctorInput())
	require.NoError(t, err)
	assert.Equal(t, "strange@sanctum.io", res.User.Email)
	assert.Equal(t, models.RoleDoctor, res.User.Role)
	assert.NotEqual(t, "pw", res.User.Password)

	claims, err := jwt.ParseJWT(res.Token, "secret")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.ID)
	assert.Equal(t, "doctor", claims.Role)

	doctors, err := svc.FetchAllDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Neurology", doctors[0].Department)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository(), nil, "secret", time.Hour)
	tests := []struct {
		name  string
		edit  func(*RegisterInput)
		field string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = " " }, "name"},
		{"bad role", func(in *RegisterInput) { in.Role = "nurse" }, "role"},
		{"self-registered admin", func(in *RegisterInput) { in.Role = "admin" }, "role"},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"missing bio", func(in *RegisterInput) { in.Bio = "" }, "bio"},
		{"missing age", func(in *RegisterInput) { in.Age = 0 }, "age"},
		{"too young", func(in *RegisterInput) { in.Age = 24 }, "age"},
		{"too old", func(in *RegisterInput) { in.Age = 81 }, "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := doctorInput()
			tt.edit(&in)
			_, err := svc.Register(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRegister_DefaultsToPatient(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository(), nil, "secret", time.Hour)
	res, err := svc.Register(context.Background(), RegisterInput{Name: "P", Email: "p@x.io", Password: "pw", Age: 30, Bio: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, res.User.Role)
	assert.Zero(t, res.User.Age)
	assert.Empty(t, res.User.Bio)
}

func TestRegister_ValidationMessages(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository(), nil, "secret", time.Hour)

	in := doctorInput()
	in.Age = 0
	_, err := svc.Register(context.Background(), in)
	assert.EqualError(t, err, util.DOCTOR_FIELDS_REQUIRED)

	in.Age = 90
	_, err = svc.Register(context.Background(), in)
	assert.EqualError(t, err, util.DOCTOR_AGE_OUT_OF_RANGE)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "p@x.io", Password: "pw"})
	assert.EqualError(t, err, util.NAME_EMAIL_PASSWORD_REQUIRED)
}

func TestRegister_Duplicate(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository(), nil, "secret", time.Hour)
	_, err := svc.Register(context.Background(), doctorInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), doctorInput())
	var cerr *ConflictError
	assert.ErrorAs(t, err, &cerr)
}

func TestLogin(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository(), nil, "secret", time.Hour)
	_, err := svc.Register(context.Background(), doctorInput())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), LoginInput{Email: " STRANGE@sanctum.io", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(context.Background(), LoginInput{Email: "strange@sanctum.io", Password: "wrong"})
	var aerr *AuthError
	assert.ErrorAs(t, err, &aerr)

	_, err = svc.Login(context.Background(), LoginInput{Email: "ghost@sanctum.io", Password: "pw"})
	assert.ErrorAs(t, err, &aerr)

	_, err = svc.Login(context.Background(), LoginInput{Email: "  ", Password: "pw"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, util.EMAIL_AND_PASSWORD_REQUIRED, verr.Message)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetCache(ctx context.Context, key string, out interface{}) (bool, error) {
	args := m.Called(ctx, key, out)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) SetCache(ctx context.Context, key string, value interface{}) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockCache) DeleteCache(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestFetchUserByID_CacheAside(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	user := &models.User{Name: "Pat", Email: "pat@x.io", Role: models.RolePatient}
	require.NoError(t, users.Create(context.Background(), user))

	cache := new(mockCache)
	key := "USER:" + user.ID
	cache.On("GetCache", mock.Anything, key, mock.Anything).Return(false, nil).Once()
	cache.On("SetCache", mock.Anything, key, mock.Anything).Return(nil).Once()
	svc := NewUserService(users, cache, "secret", time.Hour)

	got, err := svc.FetchUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pat", got.Name)
	cache.AssertExpectations(t)

	cache.On("GetCache", mock.Anything, key, mock.Anything).Return(true, nil).Once()
	_, err = svc.FetchUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	cache.AssertNumberOfCalls(t, "SetCache", 1)

	cache.On("GetCache", mock.Anything, "USER:missing", mock.Anything).Return(false, nil)
	_, err = svc.FetchUserByID(context.Background(), "missing")
	var nerr *NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestFetchUserByID_EvictsUnreadableEntry(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	user := &models.User{Name: "Pat", Email: "pat@x.io", Role: models.RolePatient}
	require.NoError(t, users.Create(context.Background(), user))

	cache := new(mockCache)
	key := "USER:" + user.ID
	cache.On("GetCache", mock.Anything, key, mock.Anything).Return(false, errors.New("failed to unmarshal")).Once()
	cache.On("DeleteCache", mock.Anything, key).Return(nil).Once()
	cache.On("SetCache", mock.Anything, key, mock.Anything).Return(nil).Once()
	svc := NewUserService(users, cache, "secret", time.Hour)

	got, err := svc.FetchUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pat", got.Name)
	cache.AssertExpectations(t)
}

func TestResolveIdentity(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	user := &models.User{Name: "Dr", Email: "d@x.io", Role: models.RoleDoctor}
	require.NoError(t, users.Create(context.Background(), user))
	svc := NewUserService(users, nil, "secret", time.Hour)

	id, err := svc.ResolveIdentity(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: user.ID, Role: models.RoleDoctor, Name: "Dr"}, *id)
}
