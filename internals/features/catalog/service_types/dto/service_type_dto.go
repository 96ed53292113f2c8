package dto

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"kostku_backend/internals/features/catalog/service_types/model"
)

// ServiceTypeRequest: create & update. IsActive nil → true saat create, tidak diubah saat update.
type ServiceTypeRequest struct {
	Name         string                `json:"name" validate:"required,max=100"`
	Category     model.ServiceCategory `json:"category" validate:"required,oneof=ELECTRICITY WATER FIXED OTHER"`
	Unit         *string               `json:"unit" validate:"omitempty,max=20"`
	PricePerUnit decimal.Decimal       `json:"price_per_unit" validate:"gte=0"`
	IsActive     *bool                 `json:"is_active"`
}

func (r *ServiceTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = model.ServiceCategory(strings.ToUpper(strings.TrimSpace(string(r.Category))))
	if r.Unit != nil {
		u := strings.TrimSpace(*r.Unit)
		if u == "" {
			r.Unit = nil
		} else {
			r.Unit = &u
		}
	}
}

func (r ServiceTypeRequest) ToModel() model.ServiceTypeModel {
	return model.ServiceTypeModel{
		ServiceTypeName:         r.Name,
		ServiceTypeCategory:     r.Category,
		ServiceTypeUnit:         r.Unit,
		ServiceTypePricePerUnit: r.PricePerUnit,
		ServiceTypeIsActive:     lo.FromPtrOr(r.IsActive, true),
	}
}
