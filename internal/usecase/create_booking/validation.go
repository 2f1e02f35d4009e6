package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// supportedLanguages языки интерфейса, на которых уходят подтверждения
var supportedLanguages = map[string]struct{}{
	"en": {},
	"pl": {},
	"ua": {},
	"ru": {},
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, stepMinutes int) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	for _, addonID := range req.AddonIDs {
		if addonID <= 0 {
			return fmt.Errorf("%w: addonID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	// Время начала обязано лежать на сетке слотов
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if startMinutes%stepMinutes != 0 {
		return fmt.Errorf("%w: startTime %s is not aligned to %d-minute grid", ErrInvalidInput, req.StartTime, stepMinutes)
	}

	if err := validateClient(req); err != nil {
		return err
	}

	return nil
}

// validateClient валидирует контактные данные клиента
func validateClient(req *Request) error {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	email := strings.TrimSpace(req.ClientEmail)
	if email == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: clientEmail is malformed", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if req.Language != "" {
		if _, ok := supportedLanguages[req.Language]; !ok {
			return fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, req.Language)
		}
	}

	if req.CustomRequest != nil && len(*req.CustomRequest) > domain.MaxCustomRequestLength {
		return fmt.Errorf("%w: customRequest exceeds %d characters", ErrInvalidInput, domain.MaxCustomRequestLength)
	}

	return nil
}
