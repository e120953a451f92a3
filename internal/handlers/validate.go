package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindBody parses the JSON body into dst and validates it. On failure it
// writes the 400 response with field-level detail and returns false; no
// side effect has happened yet at that point.
func bindBody(c *fiber.Ctx, dst interface{}) bool {
	if err := c.BodyParser(dst); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		fields := fiber.Map{}
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				fields[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": fields,
		})
		return false
	}
	return true
}
