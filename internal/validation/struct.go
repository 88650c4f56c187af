package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/interverse/verse-go/internal/domain"
)

var (
	structValidator *validator.Validate
	initOnce        sync.Once
)

// initStructValidator registers the domain-specific tags on the shared
// validator instance.
func initStructValidator() {
	v := validator.New()
	_ = v.RegisterValidation("category", validateCategory)
	_ = v.RegisterValidation("rarity", validateRarity)
	structValidator = v
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	initOnce.Do(initStructValidator)
	return structValidator.Struct(s)
}

// FormatStructError maps validation failures to field-keyed messages so
// callers do not leak internal struct names into logs or responses.
func FormatStructError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid input format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "category":
			errs[field] = "Invalid item category"
		case "rarity":
			errs[field] = "Invalid rarity"
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateCategory(fl validator.FieldLevel) bool {
	category := domain.ItemCategory(fl.Field().String())
	if category == "" {
		return true
	}
	return category.Valid()
}

func validateRarity(fl validator.FieldLevel) bool {
	rarity := domain.Rarity(fl.Field().String())
	if rarity == "" {
		return true
	}
	return rarity.Valid()
}
