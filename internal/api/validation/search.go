package validation

import (
	"github.com/go-playground/validator/v10"

	"talenthub-api/pkg/models"
)

// RegisterSearchValidators registers the custom tags used by the search and
// recommendation request types.
func RegisterSearchValidators(v *validator.Validate) {
	v.RegisterValidation("freshness", validateFreshness)
	v.RegisterValidation("sort_mode", validateSortMode)
	v.RegisterValidation("education_level", validateEducationLevel)
}

// validateFreshness accepts the fixed recency windows. Empty means no cutoff
// and is handled by omitempty on the field.
func validateFreshness(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.Freshness24h, models.Freshness7d, models.Freshness30d, models.Freshness90d:
		return true
	}
	return false
}

func validateSortMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.SortRelevance, models.SortExperience, models.SortSalaryHigh, models.SortSalaryLow, models.SortRecent:
		return true
	}
	return false
}

func validateEducationLevel(fl validator.FieldLevel) bool {
	level := models.EducationLevel(fl.Field().String())
	for _, known := range models.EducationLevels() {
		if level == known {
			return true
		}
	}
	return false
}
