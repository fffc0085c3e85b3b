package utils

import (
	"os"
	"time"

	"github.com/mitlacherp/local-contract-manager/models"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateJWT(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"role":   string(user.Role),
		"email":  user.Email,
		"name":   user.Name,
		"exp":    time.Now().Add(8 * time.Hour).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
