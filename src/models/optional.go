package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// OptionalFloat is a real number that may be absent. Absent values marshal to
// JSON null and are skipped by aggregate sums.
type OptionalFloat struct {
	value float64
	valid bool
}

// Some returns a defined value. NaN and infinities are treated as absent.
func Some(v float64) OptionalFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return OptionalFloat{}
	}
	return OptionalFloat{value: v, valid: true}
}

// None returns an absent value.
func None() OptionalFloat {
	return OptionalFloat{}
}

func (o OptionalFloat) Valid() bool {
	return o.valid
}

func (o OptionalFloat) Get() (float64, bool) {
	return o.value, o.valid
}

// Or returns the value, or fallback when absent.
func (o OptionalFloat) Or(fallback float64) float64 {
	if !o.valid {
		return fallback
	}
	return o.value
}

// Ptr returns nil when absent.
func (o OptionalFloat) Ptr() *float64 {
	if !o.valid {
		return nil
	}
	v := o.value
	return &v
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = NormalizeFloat(raw)
	return nil
}

func (o OptionalFloat) String() string {
	if !o.valid {
		return ""
	}
	return strconv.FormatFloat(o.value, 'f', -1, 64)
}

// NormalizeFloat coerces a value coming from outside the process (a parsed
// spreadsheet cell, a decoded JSON payload, an arithmetic result) into an
// OptionalFloat. Anything that is not a finite number is absent.
func NormalizeFloat(v any) OptionalFloat {
	switch x := v.(type) {
	case nil:
		return None()
	case OptionalFloat:
		return x
	case *OptionalFloat:
		if x == nil {
			return None()
		}
		return *x
	case float64:
		return Some(x)
	case float32:
		return Some(float64(x))
	case *float64:
		if x == nil {
			return None()
		}
		return Some(*x)
	case int:
		return Some(float64(x))
	case int32:
		return Some(float64(x))
	case int64:
		return Some(float64(x))
	case uint:
		return Some(float64(x))
	case uint64:
		return Some(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return None()
		}
		return Some(f)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return None()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return None()
		}
		return Some(f)
	case bool:
		return None()
	default:
		return None()
	}
}
