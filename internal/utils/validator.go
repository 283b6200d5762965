package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/language-gems/analytics-service/internal/errors"
	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/registry"
)

// Validator wraps go-playground/validator with the custom rules used
// by the analytics request structs.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	RegisterCustomValidators(v)
	return &Validator{validate: v}
}

// Struct validates a struct and converts failures into the shared
// ValidationErrors type.
func (v *Validator) Struct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// Var validates a single value against a rule tag, converting
// failures the same way Struct does.
func (v *Validator) Var(field interface{}, tag string) error {
	if err := v.validate.Var(field, tag); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

func ValidateAssessmentType(fl validator.FieldLevel) bool {
	_, ok := registry.Lookup(registry.AssessmentType(fl.Field().String()))
	return ok
}

func ValidateAssignmentKind(fl validator.FieldLevel) bool {
	switch models.AssignmentKind(fl.Field().String()) {
	case models.KindAssessment, models.KindSkillsGrammar, models.KindVocabularyGame, models.KindMixedMode:
		return true
	}
	return false
}

// RegisterCustomValidators registers the domain validators.
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("assessment_type", ValidateAssessmentType)
	validate.RegisterValidation("assignment_kind", ValidateAssignmentKind)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
