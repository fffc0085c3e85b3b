package services

import (
	"errors"
	"strings"
	"time"

	"github.com/mitlacherp/local-contract-manager/config"
	"github.com/mitlacherp/local-contract-manager/models"
	"github.com/mitlacherp/local-contract-manager/utils"
)

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	normalized := strings.ToLower(strings.TrimSpace(email))
	result := config.DB.Where("lower(email) = ?", normalized).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// AuthenticateUser verifies the credentials and returns the user with a
// signed token, so callers never need a second lookup.
func AuthenticateUser(email, password string) (*models.User, string, error) {
	user, err := FindUserByEmail(email)
	if err != nil {
		return nil, "", errors.New("invalid credentials")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", errors.New("invalid credentials")
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// StartPasswordReset issues a short-lived reset code and mails it. The
// caller responds identically whether the account exists or not.
func StartPasswordReset(email string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}

	token := utils.GenerateRandomToken(6)
	user.ResetToken = token
	user.ResetTokenExp = time.Now().Add(15 * time.Minute)
	if err := config.DB.Save(user).Error; err != nil {
		return err
	}

	return utils.SendResetEmail(user.Email, token)
}

func ResetPassword(token, newPassword string) error {
	var user models.User
	result := config.DB.Where("reset_token = ? AND reset_token != ''", token).First(&user)
	if result.Error != nil || time.Now().After(user.ResetTokenExp) {
		return errors.New("invalid or expired token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return config.DB.Save(&user).Error
}
