package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kostku_backend/internals/features/catalog/service_types/dto"
	"kostku_backend/internals/features/catalog/service_types/model"
	"kostku_backend/internals/testutil"
)

func TestServiceType_CreateDefaultsActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewServiceTypeService(db)
	ctx := context.Background()

	st, err := svc.Create(ctx, dto.ServiceTypeRequest{
		Name:         "Electricity",
		Category:     model.ServiceCategoryElectricity,
		Unit:         lo.ToPtr(" kWh "),
		PricePerUnit: testutil.Dec("3000"),
	})
	require.NoError(t, err)
	assert.True(t, st.ServiceTypeIsActive)
	require.NotNil(t, st.ServiceTypeUnit)
	assert.Equal(t, "kWh", *st.ServiceTypeUnit)

	off, err := svc.Create(ctx, dto.ServiceTypeRequest{
		Name:         "Laundry",
		Category:     model.ServiceCategoryOther,
		PricePerUnit: testutil.Dec("7000"),
		IsActive:     lo.ToPtr(false),
	})
	require.NoError(t, err)
	got, err := svc.GetByID(ctx, off.ServiceTypeID)
	require.NoError(t, err)
	assert.False(t, got.ServiceTypeIsActive)

	_, err = svc.Create(ctx, dto.ServiceTypeRequest{
		Name:         "Electricity",
		Category:     model.ServiceCategoryElectricity,
		PricePerUnit: testutil.Dec("1"),
	})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Service type name already exists: Electricity")

	active, err := svc.List(ctx, lo.ToPtr(true))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Electricity", active[0].ServiceTypeName)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestServiceType_UpdateKeepsActiveWhenOmitted(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewServiceTypeService(db)
	ctx := context.Background()
	st := testutil.CreateServiceType(t, db, "Water", model.ServiceCategoryWater, "15000")
	testutil.CreateServiceType(t, db, "Internet", model.ServiceCategoryFixed, "100000")

	out, err := svc.Update(ctx, st.ServiceTypeID, dto.ServiceTypeRequest{
		Name:         "Water",
		Category:     model.ServiceCategoryWater,
		PricePerUnit: testutil.Dec("17500"),
	})
	require.NoError(t, err)
	assert.True(t, out.ServiceTypePricePerUnit.Equal(testutil.Dec("17500")))
	assert.True(t, out.ServiceTypeIsActive)

	_, err = svc.Update(ctx, st.ServiceTypeID, dto.ServiceTypeRequest{
		Name:         "Internet",
		Category:     model.ServiceCategoryWater,
		PricePerUnit: testutil.Dec("1"),
	})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Service type name already exists: Internet")
}

func TestServiceType_DeleteRefusedWhileAssigned(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewServiceTypeService(db)
	f := testutil.SeedRental(t, db, "DRAFT")

	err := svc.Delete(context.Background(), f.Electricity.ServiceTypeID)
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Cannot delete service type assigned to rooms")

	free := testutil.CreateServiceType(t, db, "Parking", model.ServiceCategoryFixed, "50000")
	require.NoError(t, svc.Delete(context.Background(), free.ServiceTypeID))
}
