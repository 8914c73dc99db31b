package billingperiod

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cutoff days are bounded to [1,28] so every month has the cutoff date.
const (
	MinCutoffDay = 1
	MaxCutoffDay = 28
)

var ErrInvalidCutoffDay = errors.New("invalid_cutoff_day")

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Period is the (month, year) bucket a recurring charge belongs to.
type Period struct {
	Month time.Month
	Year  int
}

// Label renders the stable lookup key, e.g. "Junio 2024". Equal periods
// always render byte-identical labels.
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
}

// Next returns the following calendar month, wrapping December into January
// of the next year.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Month: time.January, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

func ValidateCutoffDay(day int) error {
	if day < MinCutoffDay || day > MaxCutoffDay {
		return ErrInvalidCutoffDay
	}
	return nil
}

// Resolve computes the billing period for today under the cutoff rule:
// on or after the cutoff day the charge belongs to the next month.
func Resolve(today time.Time, cutoffDay int) (Period, error) {
	if err := ValidateCutoffDay(cutoffDay); err != nil {
		return Period{}, err
	}

	period := Period{Month: today.Month(), Year: today.Year()}
	if today.Day() >= cutoffDay {
		period = period.Next()
	}
	return period, nil
}

// ParseLabel reads a label produced by Period.Label back into a Period.
func ParseLabel(label string) (Period, bool) {
	parts := strings.Fields(strings.TrimSpace(label))
	if len(parts) != 2 {
		return Period{}, false
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1 {
		return Period{}, false
	}

	for i, name := range monthNames {
		if strings.EqualFold(name, parts[0]) {
			return Period{Month: time.Month(i + 1), Year: year}, true
		}
	}
	return Period{}, false
}
