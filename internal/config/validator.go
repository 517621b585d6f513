package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the loaded configuration against its struct tags and
// returns one error naming every failing field.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		problems = append(problems, describe(ve))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func describe(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return fmt.Sprintf("%s must be set", ve.Field())
	case "required_if":
		return fmt.Sprintf("%s must be set when %s", ve.Field(), ve.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", ve.Field(), ve.Param(), ve.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", ve.Field(), ve.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", ve.Field(), ve.Param())
	case "numeric":
		return fmt.Sprintf("%s must be numeric, got %q", ve.Field(), ve.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", ve.Field(), ve.Tag())
	}
}
