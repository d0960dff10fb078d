package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const dateOnlyLayout = "2006-01-02"

var (
	errInvalidDate = errors.New("must be an RFC 3339 timestamp or a YYYY-MM-DD date")

	dateRule = validation.By(func(value interface{}) error {
		value, _ = validation.Indirect(value)
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := parseDate(s); err != nil {
			return errInvalidDate
		}
		return nil
	})
)

// parseDate accepts full timestamps and bare dates, the latter as UTC
// midnight.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, errInvalidDate
	}

	return t, nil
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}

	t, err := parseDate(*s)
	if err != nil {
		return nil
	}

	return &t
}
