package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(jsonFieldName)
}

// bind parses the JSON body into out and runs the struct tags.
// On failure it writes the 400 response itself and returns ok=false.
func bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return false, validationError(c, err)
	}
	return true, nil
}

// bindSlice parses a JSON array body and validates every element.
func bindSlice[T any](c *fiber.Ctx) ([]T, bool, error) {
	var items []T
	if err := c.BodyParser(&items); err != nil {
		return nil, false, badBody(c, "expected a JSON array")
	}
	if len(items) == 0 {
		return nil, false, badBody(c, "expected a non-empty JSON array")
	}
	if err := validate.Var(items, "dive"); err != nil {
		return nil, false, validationError(c, err)
	}
	return items, true, nil
}

func validationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return badBody(c, err.Error())
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fieldPath(fe.Namespace())] = fe.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "request validation failed",
		Fields:  fields,
	})
}

// jsonFieldName reports fields by their JSON name.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// fieldPath drops the struct type from a namespace ("CreateOperationRequest.items[0].quantity" -> "items[0].quantity").
func fieldPath(ns string) string {
	if strings.HasPrefix(ns, "[") {
		return ns
	}
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
