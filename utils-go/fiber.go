package utils

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Router struct {
	fiber.Router
}

type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
}

func GetDefaultRouter(app *fiber.App) *Router {
	temp := app.Group("")
	return &Router{Router: temp}
}

func StandardInternalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func StandardCouldNotParse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Could not parse request",
	})
}

func StandardNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Not found",
	})
}

func StandardConflict(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func StandardValidationError(c *fiber.Ctx, errs []*ErrorResponse) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"errors": errs,
	})
}

// StandardBodyParse parses the body into config and validates it. When ok is
// false the error response has already been written and err is what the
// handler should return.
func StandardBodyParse(c *fiber.Ctx, validate *validator.Validate, config interface{}) (bool, error) {
	if err := c.BodyParser(config); err != nil {
		return false, StandardCouldNotParse(c)
	}

	if errs := ValidateStruct(validate.Struct(config)); len(errs) > 0 {
		return false, StandardValidationError(c, errs)
	}

	return true, nil
}

// ParamId reads the :id route parameter.
func ParamId(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
