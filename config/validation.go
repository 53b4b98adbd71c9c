package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/grovetools/tablaunch/command"
	"github.com/grovetools/tablaunch/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report yaml keys rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("safepath", func(fl validator.FieldLevel) bool {
		return command.IsSafePath(fl.Field().String())
	})
	_ = v.RegisterValidation("safeprofile", func(fl validator.FieldLevel) bool {
		return command.IsSafeProfile(fl.Field().String())
	})
	_ = v.RegisterValidation("safeflag", func(fl validator.FieldLevel) bool {
		return command.IsSafeFlag(fl.Field().String())
	})
	return v
}

// Validate checks the configuration, reporting every invalid field at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to validate configuration")
	}

	msgs := make([]string, len(fieldErrs))
	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = formatFieldError(fe)
		fields[i] = fieldPath(fe)
	}
	return errors.ConfigInvalid(strings.Join(msgs, "; ")).WithDetail("fields", fields)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "safepath":
		return field + " contains invalid characters"
	case "safeprofile":
		return field + " must contain only letters, digits, spaces, hyphens and underscores"
	case "safeflag":
		return fmt.Sprintf("%s: invalid flag %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
