package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/lernplan-api/internal/calendar"
	"github.com/noah-isme/lernplan-api/internal/models"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

// registerPlanValidations adds the tags used by the plan DTOs. Registering twice
// simply replaces the functions.
func registerPlanValidations(validate *validator.Validate) *validator.Validate {
	if validate == nil {
		validate = validator.New()
	}
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(calendar.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("blocktype", func(fl validator.FieldLevel) bool {
		return models.BlockType(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("slotstatus", func(fl validator.FieldLevel) bool {
		return models.SlotStatus(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("verteilungsmodus", func(fl validator.FieldLevel) bool {
		return models.Verteilungsmodus(fl.Field().String()).Valid()
	})
	return validate
}

// validationError turns validator output into a 400 with the offending fields listed.
func validationError(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
		message = fmt.Sprintf("%s: %s", message, strings.Join(fields, ", "))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(calendar.DateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q", raw))
	}
	return t, nil
}
