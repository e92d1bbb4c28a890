package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/venturegrill/api/internal/models"
)

// Validate is the shared validator instance
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("roast_level", validateRoastLevel); err != nil {
		panic(fmt.Sprintf("failed to register roast_level validator: %v", err))
	}
}

// validateRoastLevel checks that a string is a known RoastLevel enum value
func validateRoastLevel(fl validator.FieldLevel) bool {
	return models.RoastLevel(fl.Field().String()).Valid()
}

// SanitizeText trims whitespace and strips control characters (newline and
// tab are kept) from user-supplied text before it reaches prompts or logs.
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	sanitized.Grow(len(text))
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
