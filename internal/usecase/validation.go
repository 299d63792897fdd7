package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"magazine/internal/entity"

	"github.com/go-playground/validator/v10"
)

const (
	msgRequired        = "This field is required."
	msgUsernameTaken   = "A user with that username already exists."
	msgInvalidUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgInvalidEmail    = "Enter a valid email address."
	msgPasswordTooLong = "Ensure this field has no more than 72 bytes."
	msgInvalidImage    = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field errors are keyed by the JSON name the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// validateStruct runs the struct tags and collects every failing field.
func validateStruct(s interface{}) *entity.ValidationError {
	verr := entity.NewValidationError()

	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(s); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), fieldMessage(fe))
		}
	}

	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "email":
		return msgInvalidEmail
	case "username":
		return msgInvalidUsername
	default:
		return "Invalid value."
	}
}
