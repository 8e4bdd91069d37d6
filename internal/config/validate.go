package config

import (
	"errors"
	"fmt"
	"strings"

	"photo-watermarker/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidConfig = errors.New("invalid config")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Registration only fails for malformed tags, which would be a programming error.
	if err := v.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
		return IsHexColor(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("element_field", func(fl validator.FieldLevel) bool {
		return domain.Field(fl.Field().String()).Known()
	}); err != nil {
		panic(err)
	}

	return v
}

// IsHexColor accepts exactly "#RRGGBB".
func IsHexColor(s string) bool {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return false
	}
	_, err := colorful.Hex(s)
	return err == nil
}

// Validate checks the struct tags of c. Field errors are joined into one
// error that wraps ErrInvalidConfig.
func Validate(c *Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "hex_color":
		return fmt.Sprintf("%s: %q is not a #RRGGBB color", field, fe.Value())
	case "element_field":
		return fmt.Sprintf("%s: unknown element field %q", field, fe.Value())
	case "required_if":
		return fmt.Sprintf("%s: value is required for custom elements", field)
	case "min", "max":
		return fmt.Sprintf("%s: %v is out of range (%s=%s)", field, fe.Value(), fe.Tag(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: %v must be one of [%s]", field, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
	}
}
