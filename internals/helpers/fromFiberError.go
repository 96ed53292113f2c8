package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FromFiberError mengubah error dari service/Transaction (biasanya *fiber.Error)
// menjadi response JSON standar. Error lain dianggap 500 dan pesannya tidak dibocorkan.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "record not found")
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// ErrorHandler dipasang di fiber.Config supaya error yang lolos dari handler
// tetap keluar dengan shape yang sama.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
