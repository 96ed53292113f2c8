package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	"kostku_backend/internals/constants"
	"kostku_backend/internals/features/users/auth/dto"
	authModel "kostku_backend/internals/features/users/auth/model"
	authRepo "kostku_backend/internals/features/users/auth/repository"
	userModel "kostku_backend/internals/features/users/user/model"
	"kostku_backend/internals/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"
	configs.JWTTTL = time.Hour
	db := testutil.NewTestDB(t)
	svc := NewAuthService(db)
	return svc, db
}

func strPtr(s string) *string { return &s }

func register(t *testing.T, svc *AuthService, username string) *dto.AuthResponse {
	t.Helper()
	out, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Password: "secret123",
		FullName: "Tran Van " + username,
		Email:    strPtr(username + "@example.com"),
	})
	require.NoError(t, err)
	return out
}

func TestRegister_IssuesTenantToken(t *testing.T) {
	svc, db := newAuthService(t)

	out := register(t, svc, "budi")
	assert.Equal(t, "Bearer", out.Type)
	assert.Equal(t, "budi", out.Username)
	assert.Equal(t, []string{constants.RoleTenant}, out.Roles)

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(out.Token, claims, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, out.ID.String(), claims["id"])
	assert.Equal(t, out.ID.String(), claims["sub"])
	assert.Equal(t, "budi", claims["user_name"])
	assert.Equal(t, constants.RoleTenant, claims["role"])

	var u userModel.UserModel
	require.NoError(t, db.Where("user_name = ?", "budi").First(&u).Error)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.Password)
}

func TestRegister_DuplicateUsernameOrEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "budi")
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "budi", Password: "secret123", FullName: "Other"})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Username is already taken")

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Username: "andi", Password: "secret123", FullName: "Andi", Email: strPtr("budi@example.com"),
	})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Email is already in use")

	// tanpa email boleh berkali-kali
	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "andi", Password: "secret123", FullName: "Andi"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "citra", Password: "secret123", FullName: "Citra"})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, db := newAuthService(t)
	reg := register(t, svc, "budi")
	ctx := context.Background()

	out, err := svc.Login(ctx, dto.LoginRequest{Username: "budi", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, out.ID)
	assert.NotEmpty(t, out.Token)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "budi", Password: "wrong"})
	testutil.AssertFiberError(t, err, fiber.StatusUnauthorized, "Invalid username or password")

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "secret123"})
	testutil.AssertFiberError(t, err, fiber.StatusUnauthorized, "Invalid username or password")

	require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", reg.ID).Update("is_active", false).Error)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "budi", Password: "secret123"})
	testutil.AssertFiberError(t, err, fiber.StatusForbidden, "")
}

func TestLogout_BlacklistsUntilExpiry(t *testing.T) {
	svc, db := newAuthService(t)
	issuedAt := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return issuedAt }
	reg := register(t, svc, "budi")
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, reg.Token))
	require.NoError(t, svc.Logout(ctx, reg.Token))

	ok, err := authRepo.IsTokenBlacklisted(db, reg.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	var rows []authModel.TokenBlacklist
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ExpiredAt.Equal(issuedAt.Add(time.Hour)), rows[0].ExpiredAt.String())

	// tanpa token: no-op
	require.NoError(t, svc.Logout(ctx, ""))
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	reg := register(t, svc, "budi")
	ctx := context.Background()

	err := svc.ChangePassword(ctx, reg.ID, "wrong", "newsecret")
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Current password is incorrect")

	require.NoError(t, svc.ChangePassword(ctx, reg.ID, "secret123", "newsecret"))

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "budi", Password: "secret123"})
	testutil.AssertFiberError(t, err, fiber.StatusUnauthorized, "")
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "budi", Password: "newsecret"})
	require.NoError(t, err)
}
