package repository

import (
	"bakery-backoffice/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(user *model.User) error
	FindAll() ([]model.User, error)
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByCredentials(username, email string) (*model.User, error)
	Update(user *model.User) error
	Delete(id uint) error
	Count() (int64, error)
}

type userRepo struct {
	crud[model.User]
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{crud[model.User]{db}}
}

func (r *userRepo) WithTx(tx *gorm.DB) UserRepository {
	return NewUserRepo(tx)
}

// Create inserts the user only; the profile is written by the profile repository.
func (r *userRepo) Create(user *model.User) error {
	return r.db.Omit("Profile").Create(user).Error
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("Profile").Order("id ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Profile").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Profile").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByCredentials matches a user on both username and email.
func (r *userRepo) FindByCredentials(username, email string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Profile").Where("username = ? AND email = ?", username, email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Omit("Profile").Save(user).Error
}

type ProfileRepository interface {
	WithTx(tx *gorm.DB) ProfileRepository
	Create(profile *model.UserProfile) error
	FindAll() ([]model.UserProfile, error)
	FindByID(id uint) (*model.UserProfile, error)
	FindByUserID(userID uint) (*model.UserProfile, error)
	Update(profile *model.UserProfile) error
	DeleteByUser(userID uint) error
	Count() (int64, error)
}

type profileRepo struct {
	crud[model.UserProfile]
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{crud[model.UserProfile]{db}}
}

func (r *profileRepo) WithTx(tx *gorm.DB) ProfileRepository {
	return NewProfileRepo(tx)
}

func (r *profileRepo) FindAll() ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	err := r.db.Order("id ASC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) FindByUserID(userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.UserProfile{}).Error
}

type TokenRepository interface {
	WithTx(tx *gorm.DB) TokenRepository
	Create(token *model.AuthToken) error
	FindByUserID(userID uint) (*model.AuthToken, error)
	FindByKey(key string) (*model.AuthToken, error)
	DeleteByUser(userID uint) error
}

type tokenRepo struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) TokenRepository {
	return &tokenRepo{db}
}

func (r *tokenRepo) WithTx(tx *gorm.DB) TokenRepository {
	return NewTokenRepo(tx)
}

func (r *tokenRepo) Create(token *model.AuthToken) error {
	return r.db.Omit("User").Create(token).Error
}

func (r *tokenRepo) FindByUserID(userID uint) (*model.AuthToken, error) {
	var token model.AuthToken
	if err := r.db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByKey loads a token with its user and profile.
func (r *tokenRepo) FindByKey(key string) (*model.AuthToken, error) {
	var token model.AuthToken
	if err := r.db.Preload("User.Profile").Where(&model.AuthToken{Key: key}).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepo) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.AuthToken{}).Error
}
