package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	"kostku_backend/internals/features/users/user/dto"
	"kostku_backend/internals/features/users/user/model"
	helper "kostku_backend/internals/helpers"
	"kostku_backend/internals/testutil"
)

func createUser(t *testing.T, db *gorm.DB, username string, email *string, role string) model.UserModel {
	t.Helper()
	u := model.UserModel{
		UserName: username,
		Email:    email,
		Password: "x",
		FullName: "User " + username,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func ptr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()
	budi := createUser(t, db, "budi", ptr("budi@example.com"), constants.RoleTenant)
	createUser(t, db, "andi", ptr("andi@example.com"), constants.RoleTenant)

	_, err := svc.UpdateProfile(ctx, budi.ID, dto.UpdateProfileRequest{Email: ptr("andi@example.com")})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Email is already in use")

	// email sendiri tidak dianggap bentrok
	out, err := svc.UpdateProfile(ctx, budi.ID, dto.UpdateProfileRequest{
		FullName: ptr("Budi Santoso"),
		Email:    ptr("budi@example.com"),
		Phone:    ptr("0812"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", out.FullName)
	require.NotNil(t, out.Phone)
	assert.Equal(t, "0812", *out.Phone)

	// phone kosong → null, nama tidak berubah
	out, err = svc.UpdateProfile(ctx, budi.ID, dto.UpdateProfileRequest{Phone: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, out.Phone)
	assert.Equal(t, "Budi Santoso", out.FullName)

	_, err = svc.GetProfile(ctx, uuid.New())
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "User not found")
}

func TestSetActiveAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()
	admin := createUser(t, db, "admin", nil, constants.RoleAdmin)
	budi := createUser(t, db, "budi", nil, constants.RoleTenant)

	_, err := svc.SetActive(ctx, admin.ID, admin.ID, false)
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Cannot deactivate your own account")

	out, err := svc.SetActive(ctx, admin.ID, budi.ID, false)
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	got, err := svc.GetProfile(ctx, budi.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	rows, total, err := svc.List(ctx, "BUD", helper.Params{Page: 1, PerPage: 10, SortBy: "user_name", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "budi", rows[0].UserName)
}
