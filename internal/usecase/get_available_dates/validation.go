package get_available_dates

import "fmt"

// maxRangeDays ограничивает длину сканируемого периода
// Каждый день периода стоит отдельных запросов к базе
const maxRangeDays = 92

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	for _, addonID := range req.AddonIDs {
		if addonID <= 0 {
			return fmt.Errorf("%w: addonID must be positive", ErrInvalidInput)
		}
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to date is before from date", ErrInvalidRange)
	}

	if int(req.To.Sub(req.From).Hours()/24) > maxRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, maxRangeDays)
	}

	return nil
}
