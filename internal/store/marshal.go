package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratelab/ratelab/internal/schedule"
)

// timestampFormat stores instants as ISO 8601 TEXT, sortable and stable.
const timestampFormat = time.RFC3339Nano

// marshalRates serializes a rate vector as a JSON array of decimal
// strings. Floats never hit the wire: each entry goes through an exact
// decimal representation so that what is read back is what was written.
func marshalRates(rates schedule.RateVector) (string, error) {
	strs := make([]string, len(rates))
	for i, r := range rates {
		strs[i] = decimal.NewFromFloat(r).String()
	}
	data, err := json.Marshal(strs)
	if err != nil {
		return "", fmt.Errorf("marshal rates: %w", err)
	}
	return string(data), nil
}

// unmarshalRates parses the stored decimal strings back to fractions.
func unmarshalRates(text string) (schedule.RateVector, error) {
	var strs []string
	if err := json.Unmarshal([]byte(text), &strs); err != nil {
		return nil, fmt.Errorf("unmarshal rates: %w", err)
	}

	rates := make(schedule.RateVector, len(strs))
	for i, s := range strs {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("unmarshal rate %d: %w", i, err)
		}
		rates[i] = d.InexactFloat64()
	}
	return rates, nil
}

// marshalIncome serializes an income as a decimal string.
func marshalIncome(income float64) string {
	return decimal.NewFromFloat(income).String()
}

// unmarshalIncome parses a stored decimal income back to a float.
func unmarshalIncome(text string) (float64, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("unmarshal income: %w", err)
	}
	return d.InexactFloat64(), nil
}

// parseTimestamp parses the stored ISO 8601 TEXT column.
func parseTimestamp(text string) (time.Time, error) {
	t, err := time.Parse(timestampFormat, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", text, err)
	}
	return t, nil
}
