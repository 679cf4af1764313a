package usecase

import (
	"context"
	"testing"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// staticUserRepo serves a single in-memory user.
type staticUserRepo struct {
	user *entity.User
}

func (r *staticUserRepo) Create(db *gorm.DB, user *entity.User) error { return nil }
func (r *staticUserRepo) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, nil
}
func (r *staticUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.user, nil
}
func (r *staticUserRepo) Update(db *gorm.DB, user *entity.User) error { return nil }

func newLoginFixture(t *testing.T, user *entity.User) AuthUsecase {
	t.Helper()
	return NewAuthUsecase(newDetachedDB(t), newSilentLogger(), &staticUserRepo{user: user}, nil, nil, nil)
}

func seededPasswordHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	inactive := false
	uc := newLoginFixture(t, &entity.User{
		Username: "parked",
		Password: seededPasswordHash(t, "s3cret-pw"),
		IsActive: &inactive,
	})

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Username: "parked",
		Password: "s3cret-pw",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	active := true
	uc := newLoginFixture(t, &entity.User{
		Username: "dispatcher1",
		Password: seededPasswordHash(t, "s3cret-pw"),
		IsActive: &active,
	})

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Username: "dispatcher1",
		Password: "wrong-pw",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	uc := newLoginFixture(t, nil)

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Username: "ghost",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnusablePasswordHash(t *testing.T) {
	// The external intake account is seeded with "!" which no password
	// can ever match
	active := false
	uc := newLoginFixture(t, &entity.User{
		Username: "external_system",
		Password: "!",
		IsActive: &active,
	})

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Username: "external_system",
		Password: "!",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
