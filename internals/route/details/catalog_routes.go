package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	boardingHouseRoute "kostku_backend/internals/features/catalog/boarding_houses/route"
	roomServiceRoute "kostku_backend/internals/features/catalog/room_services/route"
	roomRoute "kostku_backend/internals/features/catalog/rooms/route"
	serviceTypeRoute "kostku_backend/internals/features/catalog/service_types/route"
)

// 🏠 kos, kamar, jenis layanan, layanan per kamar
func CatalogRoutes(private fiber.Router, db *gorm.DB) {
	boardingHouseRoute.BoardingHouseRoutes(private, db)
	roomRoute.RoomRoutes(private, db)
	serviceTypeRoute.ServiceTypeRoutes(private, db)
	roomServiceRoute.RoomServiceRoutes(private, db)
}
