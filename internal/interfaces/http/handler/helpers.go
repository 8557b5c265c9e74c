package handler

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseDateRange converts date_from/date_to query strings (YYYY-MM-DD) into
// an inclusive window. Empty strings stay nil; a window whose start is after
// its end is rejected.
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, nil, fmt.Errorf("date_from must be a date in YYYY-MM-DD format")
		}
		from = &t
	}

	if toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, nil, fmt.Errorf("date_to must be a date in YYYY-MM-DD format")
		}
		to = &t
	}

	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("date_from must not be after date_to")
	}
	return from, to, nil
}
