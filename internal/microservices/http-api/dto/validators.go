package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/models"
)

// RegisterValidators adds the custom tags used by the DTOs. It is called on
// gin's binding engine by the server and on a plain validator by the CLI.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("clocktime", isClockTime); err != nil {
		return fmt.Errorf("register clocktime: %w", err)
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	return nil
}

func isClockTime(fl validator.FieldLevel) bool {
	_, err := models.ParseClockTime(fl.Field().String())
	return err == nil
}
