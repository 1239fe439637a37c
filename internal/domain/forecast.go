package domain

import "fmt"

// TemperatureForecast is the NBM day-1 high/low pair in degrees Fahrenheit.
// Both values come from the same TXN record; a record missing either one is
// treated as no forecast at all, never a partial pair.
type TemperatureForecast struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

func (f TemperatureForecast) String() string {
	return fmt.Sprintf("%d°F / %d°F", f.High, f.Low)
}
