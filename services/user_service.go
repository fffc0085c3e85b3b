package services

import (
	"errors"

	"github.com/mitlacherp/local-contract-manager/config"
	"github.com/mitlacherp/local-contract-manager/models"
	"github.com/mitlacherp/local-contract-manager/utils"
)

type UserSummary struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt string      `json:"created_at"`
}

func ListUsers() ([]UserSummary, error) {
	var users []models.User
	if err := config.DB.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return out, nil
}

func CreateUser(name, email, password string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, errors.New("unknown role")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Name: name, Email: email, Password: hashed, Role: role}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, errors.New("email already exists or invalid data")
	}
	return &user, nil
}

func DeleteUser(id uint) error {
	return config.DB.Delete(&models.User{}, id).Error
}
