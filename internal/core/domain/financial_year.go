package domain

import (
	"fmt"
	"strconv"
	"time"
)

// ParseFinancialYear validates a financial year label of the form 2024-25 and returns its start year.
func ParseFinancialYear(fy string) (int, error) {
	if len(fy) != 7 || fy[4] != '-' {
		return 0, fmt.Errorf("financial year %q must look like YYYY-YY", fy)
	}
	start, err := strconv.Atoi(fy[:4])
	if err != nil {
		return 0, fmt.Errorf("financial year %q has a non-numeric start year", fy)
	}
	end, err := strconv.Atoi(fy[5:])
	if err != nil {
		return 0, fmt.Errorf("financial year %q has a non-numeric end year", fy)
	}
	if (start+1)%100 != end {
		return 0, fmt.Errorf("financial year %q must span consecutive years", fy)
	}
	return start, nil
}

// FinancialYearOf returns the April-to-March financial year containing t.
func FinancialYearOf(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
