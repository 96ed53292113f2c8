package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kostku_backend/internals/features/catalog/room_services/dto"
	serviceTypeModel "kostku_backend/internals/features/catalog/service_types/model"
	"kostku_backend/internals/testutil"
)

func TestRoomService_AssignOncePerRoom(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewRoomServiceService(db)
	ctx := context.Background()
	bh := testutil.CreateBoardingHouse(t, db, "Sunshine Boarding House")
	room := testutil.CreateRoom(t, db, bh.BoardingHouseID, "R101", "3000000")
	water := testutil.CreateServiceType(t, db, "Water", serviceTypeModel.ServiceCategoryWater, "15000")

	out, err := svc.Create(ctx, room.RoomID, dto.CreateRoomServiceRequest{
		ServiceTypeID: water.ServiceTypeID,
		PricePerUnit:  testutil.DecPtr("12000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "R101", out.RoomCode)
	assert.Equal(t, "Water", out.ServiceTypeName)
	assert.Equal(t, serviceTypeModel.ServiceCategoryWater, out.ServiceCategory)
	assert.True(t, out.DefaultPrice.Equal(testutil.Dec("15000")))
	require.NotNil(t, out.RoomServicePricePerUnit)
	assert.True(t, out.RoomServicePricePerUnit.Equal(testutil.Dec("12000")))

	_, err = svc.Create(ctx, room.RoomID, dto.CreateRoomServiceRequest{ServiceTypeID: water.ServiceTypeID})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Service already assigned to this room")

	list, err := svc.ListByRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRoomService_UpdateOnlySuppliedOverrides(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewRoomServiceService(db)
	ctx := context.Background()
	f := testutil.SeedRental(t, db, "DRAFT")

	list, err := svc.ListByRoom(ctx, f.Room.RoomID)
	require.NoError(t, err)
	internet, ok := lo.Find(list, func(r dto.RoomServiceResponse) bool { return r.ServiceTypeName == "Internet" })
	require.True(t, ok)

	out, err := svc.Update(ctx, internet.RoomServiceID, dto.UpdateRoomServiceRequest{PricePerUnit: testutil.DecPtr("1")})
	require.NoError(t, err)
	require.NotNil(t, out.RoomServiceFixedPrice)
	assert.True(t, out.RoomServiceFixedPrice.Equal(testutil.Dec("200000")))
	require.NotNil(t, out.RoomServicePricePerUnit)
}

func TestRoomService_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewRoomServiceService(db)
	ctx := context.Background()
	id := uuid.New()

	err := svc.Delete(ctx, id)
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Room service not found with id: "+id.String())

	_, err = svc.GetByID(ctx, id)
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Room service not found with id: "+id.String())

	_, err = svc.Create(ctx, id, dto.CreateRoomServiceRequest{ServiceTypeID: uuid.New()})
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Room not found with id: "+id.String())
}
