package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value as entered by the user. It is NaN when the input
// was not a number.
type Amount float64

// ParseAmount never fails: text that is not a finite number yields NaN.
func ParseAmount(s string) Amount {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) {
		return Amount(math.NaN())
	}
	return Amount(v)
}

func (a Amount) Float64() float64 {
	return float64(a)
}

func (a Amount) IsNaN() bool {
	return math.IsNaN(float64(a))
}

// MarshalJSON writes NaN and infinities as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Amount(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}
