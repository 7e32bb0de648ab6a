package utils

import (
	"reflect"
	"regexp"
	"strings"

	"storefront-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	slasTenantIDPattern  = regexp.MustCompile(constvars.RegexSlasTenantID)
	slasShortCodePattern = regexp.MustCompile(constvars.RegexSlasShortCode)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("slas_tenant_id", func(fl validator.FieldLevel) bool {
		return slasTenantIDPattern.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("slas_short_code", func(fl validator.FieldLevel) bool {
		return slasShortCodePattern.MatchString(fl.Field().String())
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
