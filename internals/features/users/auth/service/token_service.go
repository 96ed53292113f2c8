// internals/features/users/auth/service/token_service.go
package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"kostku_backend/internals/configs"
	userModel "kostku_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func accessTTL() time.Duration {
	if configs.JWTTTL > 0 {
		return configs.JWTTTL
	}
	return accessTTLDefault
}

// buildAccessClaims: id & sub = user id, role tunggal
func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"id":        user.ID.String(),
		"sub":       user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL()).Unix(),
	}
}

// IssueAccessToken: HS256
func IssueAccessToken(user userModel.UserModel, now time.Time) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).SignedString([]byte(secret))
}

// tokenExpiry: exp dari token (tanpa validasi exp); fallback now+TTL kalau tidak terbaca
func tokenExpiry(token string, now time.Time) time.Time {
	fallback := now.Add(accessTTL())
	secret, err := getJWTSecret()
	if err != nil || token == "" {
		return fallback
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return fallback
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC()
	}
	return fallback
}
