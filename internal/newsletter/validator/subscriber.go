package validator

import (
	"errors"
	"fmt"

	"bistro/pkg/logger"
	"bistro/pkg/model"

	"github.com/go-playground/validator/v10"
)

type SubscriberValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewSubscriberValidator(log *logger.Logger) *SubscriberValidator {
	log.Debug("Subscriber validator initialized successfully")

	return &SubscriberValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log,
	}
}

// Validate reports the first problem with the sign-up. Only the email is checked.
func (v *SubscriberValidator) Validate(req *model.SubscribeRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return fmt.Errorf("email failed %q rule", validationErrs[0].Tag())
		}
		return err
	}
	return nil
}
