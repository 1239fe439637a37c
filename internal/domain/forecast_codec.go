package domain

import (
	"strconv"
	"strings"
)

// txnMarker begins the NBM row carrying the overnight low and daytime high.
const txnMarker = "TXN"

// DecodeForecast extracts the day-1 temperature pair from an NBM text blend
// product. The feed may repeat the TXN row across forecast cycles; the last
// occurrence is the most recent cycle and wins. Token order on the row is
// low first, then high.
//
// Any failure (no TXN row, too few tokens, non-numeric tokens) surfaces as a
// MissingFieldError; short lines and garbage input never panic.
func DecodeForecast(raw string) (TemperatureForecast, error) {
	var record []string
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) > 0 && fields[0] == txnMarker {
			record = fields
		}
	}

	if len(record) < 3 {
		return TemperatureForecast{}, &MissingFieldError{Field: "temps"}
	}

	low, errLow := strconv.Atoi(record[1])
	high, errHigh := strconv.Atoi(record[2])
	if errLow != nil || errHigh != nil {
		return TemperatureForecast{}, &MissingFieldError{Field: "temps"}
	}

	return TemperatureForecast{High: high, Low: low}, nil
}
