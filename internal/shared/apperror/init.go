package apperror

import (
	"reflect"
	"strings"

	"go-employee-admin/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// EmailTag is the binding tag for the loose address rule in domain.ValidEmail.
const EmailTag = "emailaddr"

func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidations(v)
	}
}

func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || domain.ValidEmail(s)
	})
}
