package helper

import (
	"github.com/gofiber/fiber/v2"
)

// ✅ Success Response generic (POST register, dsb)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// ✅ List tanpa pagination (driver file: full dump)
func JsonList(c *fiber.Ctx, data any, count int) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   count,
	})
}

// ✅ List dengan pagination (driver postgres)
func JsonListPaged(c *fiber.Ctx, data any, count int, total int64, p Paging) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"data":       data,
		"count":      count,
		"total":      total,
		"page":       p.Page,
		"totalPages": TotalPages(total, p.Limit),
	})
}

// ✅ Error Response sederhana
func JsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// ✅ Error Response advance, bisa kirim multiple field error
func JsonErrorWithDetails(c *fiber.Ctx, status int, message string, details any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"details": details,
	})
}
