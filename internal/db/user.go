package db

import (
	"time"

	"gorm.io/gorm"
)

// AllUsers returns every account, oldest first.
func AllUsers(db *gorm.DB) ([]User, error) {
	var users []User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByUsername returns the account with the given username, or
// (nil, nil) when no such account exists.
func FindByUsername(db *gorm.DB, username string) (*User, error) {
	var user User
	err := db.Where("username = ?", username).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the account with the given id, or (nil, nil) when
// no such account exists.
func FindByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	err := db.First(&user, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new account. The unique index on username makes
// the insert fail on a duplicate.
func CreateUser(db *gorm.DB, user *User) error {
	return db.Create(user).Error
}

// UpdateSettings replaces the stored settings document wholesale. No
// merging happens at this layer.
func UpdateSettings(db *gorm.DB, id uint, raw []byte) error {
	return db.Model(&User{}).Where("id = ?", id).Update("settings", raw).Error
}

// TouchLogin records a successful login.
func TouchLogin(db *gorm.DB, id uint) error {
	now := time.Now()
	return db.Model(&User{}).Where("id = ?", id).Update("date_logged_in", now).Error
}
