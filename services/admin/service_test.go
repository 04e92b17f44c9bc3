package admin

import (
	"context"
	"testing"

	adminRepo "velour/database/repository/admin"
	"velour/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	byEmail map[string]*models.Admin
	byID    map[string]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		byEmail: make(map[string]*models.Admin),
		byID:    make(map[string]*models.Admin),
	}
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *models.Admin) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return adminRepo.ErrDuplicateEmail
	}
	if a.Role == "" {
		a.Role = "Administrator"
	}
	cp := *a
	f.byEmail[a.Email] = &cp
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, adminRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, adminRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminRepo) UpdateProfile(ctx context.Context, id string, patch models.AdminPatch) (*models.Admin, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, adminRepo.ErrNotFound
	}
	if patch.Name != "" {
		a.Name = patch.Name
	}
	if patch.Email != "" {
		a.Email = patch.Email
	}
	if patch.ProfilePicture != "" {
		a.ProfilePicture = patch.ProfilePicture
	}
	cp := *a
	return &cp, nil
}

func newTestAdminService() (*DefaultAdminService, *fakeAdminRepo) {
	repo := newFakeAdminRepo()
	return &DefaultAdminService{
		Repo:      repo,
		SecretKey: "velvet-key",
	}, repo
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Name:      "Njeri Kamau",
		Email:     "Njeri@Example.com",
		Password:  "correct horse battery",
		SecretKey: "velvet-key",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAdminService()

	a, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "njeri@example.com", a.Email)
	assert.Equal(t, "Administrator", a.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("correct horse battery")))
}

func TestRegisterWrongSecretKey(t *testing.T) {
	svc, _ := newTestAdminService()

	req := validRegistration()
	req.SecretKey = "wrong"
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSecretKey)
}

func TestRegisterDisabledWhenNoSecretConfigured(t *testing.T) {
	svc, _ := newTestAdminService()
	svc.SecretKey = ""

	req := validRegistration()
	req.SecretKey = ""
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSecretKey)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAdminService()

	var vErr ValidationError

	req := validRegistration()
	req.Name = "  "
	_, err := svc.Register(context.Background(), req)
	assert.ErrorAs(t, err, &vErr)

	req = validRegistration()
	req.Email = "not-an-email"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorAs(t, err, &vErr)

	req = validRegistration()
	req.Password = "short"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorAs(t, err, &vErr)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAdminService()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestAdminService()
	registered, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	a, token, err := svc.Authenticate(context.Background(), LoginRequest{
		Email:    "njeri@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, a.ID)
	assert.NotEmpty(t, token)
}

func TestAuthenticateBadCredentials(t *testing.T) {
	svc, _ := newTestAdminService()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, _, err = svc.Authenticate(context.Background(), LoginRequest{
		Email: "njeri@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authenticate(context.Background(), LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestAdminService()
	registered, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), registered.ID, models.AdminPatch{Name: "N. Kamau"})
	require.NoError(t, err)
	assert.Equal(t, "N. Kamau", updated.Name)

	_, err = svc.UpdateProfile(context.Background(), registered.ID, models.AdminPatch{Email: "broken"})
	var vErr ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.UpdateProfile(context.Background(), "missing", models.AdminPatch{Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}
