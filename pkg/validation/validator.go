package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stellarweave/galaxysim/pkg/trait"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MinNodes           = 2
	MaxNodes           = 2000
	MinAttributes      = 1
	MaxAttributes      = 64
	MaxTraitNameLength = 50

	traitNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9 _-]*$`)
)

func init() {
	validate = validator.New()
}

// ValidateStruct runs tag-based validation over any tagged struct and
// rewrites the first failure into a user-facing message.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// GenerateRequest describes a node-set regeneration.
type GenerateRequest struct {
	Count      int      `json:"count" validate:"required,min=2,max=2000"`
	Attributes int      `json:"attributes" validate:"required,min=1,max=64"`
	TraitNames []string `json:"traitNames" validate:"omitempty,dive,max=50"`
	Seed       int64    `json:"seed"`
}

// ValidateGenerateRequest validates a node-set regeneration request.
func ValidateGenerateRequest(req *GenerateRequest) error {
	if req == nil {
		return errors.New("generate request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if len(req.TraitNames) > 0 && len(req.TraitNames) != req.Attributes {
		return fmt.Errorf("TraitNames: got %d names for %d attributes", len(req.TraitNames), req.Attributes)
	}
	if len(req.TraitNames) > 0 {
		if err := ValidateTraitNames(req.TraitNames); err != nil {
			return fmt.Errorf("TraitNames: %w", err)
		}
	}

	return nil
}

// ValidateTraitNames checks trait display names: character set, length,
// and case-insensitive uniqueness.
func ValidateTraitNames(names []string) error {
	seen := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("name at index %d is empty", i)
		}
		if len(name) > MaxTraitNameLength {
			return fmt.Errorf("name '%s' exceeds maximum length of %d characters", name, MaxTraitNameLength)
		}
		if !traitNamePattern.MatchString(name) {
			return fmt.Errorf("name '%s' contains invalid characters (must start with a letter)", name)
		}
		key := strings.ToLower(name)
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("name '%s' at index %d duplicates index %d (names are case-insensitive)", name, i, prev)
		}
		seen[key] = i
	}
	return nil
}

// ValidateTraitValues checks a raw trait vector before it enters the
// store: correct length and every value inside the trait domain.
func ValidateTraitValues(values []float64, attributes int) error {
	if len(values) != attributes {
		return fmt.Errorf("expected %d trait values, got %d", attributes, len(values))
	}
	for i, v := range values {
		if v < 0 || v > trait.MaxValue {
			return fmt.Errorf("value %f at index %d is outside [0, %v]", v, i, trait.MaxValue)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
