package validate

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taskhub/app/model/field"
)

// RegisterValidation installs the custom binding tags used by request
// DTOs.
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("member_role", memberRole)
}

// member_role accepts ADMIN or MEMBER in any case.
func memberRole(fl validator.FieldLevel) bool {
	_, ok := field.ParseRole(fl.Field().String())
	return ok
}
