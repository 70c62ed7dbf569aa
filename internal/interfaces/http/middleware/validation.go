package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/domain/inventory"
)

// SetupValidator configures the binding validator with JSON field names and
// the domain enum validations used by request DTOs.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("movementtype", func(fl validator.FieldLevel) bool {
		return inventory.MovementType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("referencetype", func(fl validator.FieldLevel) bool {
		return inventory.ReferenceType(fl.Field().String()).IsValid()
	})
}
