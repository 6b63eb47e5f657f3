package validator

import (
	"github.com/go-playground/validator/v10"

	"medichain-service/internal/domain/entity"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// hedera_account validates a shard.realm.num account id string
	v.RegisterValidation("hedera_account", func(fl validator.FieldLevel) bool {
		return entity.ValidWalletAddress(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "hedera_account":
				errors[field] = field + " must be a valid Hedera account id (e.g. 0.0.12345)"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
