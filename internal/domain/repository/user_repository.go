package repository

import (
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
}

type UserProfileRepository interface {
	Create(db *gorm.DB, profile *entity.UserProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.UserProfile, error)
	Update(db *gorm.DB, profile *entity.UserProfile) error
}
