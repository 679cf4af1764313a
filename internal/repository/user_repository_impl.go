package repository

import (
	"errors"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	domainRepo "github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Profile").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Profile").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Save(user).Error
}

type userProfileRepository struct{}

func NewUserProfileRepository() domainRepo.UserProfileRepository {
	return &userProfileRepository{}
}

func (r *userProfileRepository) Create(db *gorm.DB, profile *entity.UserProfile) error {
	return db.Create(profile).Error
}

func (r *userProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *userProfileRepository) Update(db *gorm.DB, profile *entity.UserProfile) error {
	return db.Save(profile).Error
}
