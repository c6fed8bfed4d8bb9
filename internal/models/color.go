package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidColor is returned for color overrides that are not hex colors
// such as #rgb or #rrggbb.
var ErrInvalidColor = errors.New("invalid color")

var validate = validator.New()

// ValidateColor accepts nil (theme default) or a hex color string.
func ValidateColor(c *string) error {
	if c == nil {
		return nil
	}
	if err := validate.Var(*c, "required,hexcolor"); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidColor, *c)
	}
	return nil
}
