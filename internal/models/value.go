package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a display field taken from the payload as-is. Strings are unquoted,
// numbers are printed in their shortest form and any other token keeps its
// compact JSON text, so an unexpected type never fails the whole decode.
type Value struct {
	text  string
	valid bool
}

// Text returns a Value holding s.
func Text(s string) *Value {
	return &Value{text: s, valid: true}
}

// Number returns a Value holding f.
func Number(f float64) *Value {
	return &Value{text: formatNumber(f), valid: true}
}

// Valid reports whether the field carried a non-null token.
func (v *Value) Valid() bool {
	return v != nil && v.valid
}

func (v *Value) String() string {
	if v == nil {
		return ""
	}
	return v.text
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*v = Value{}

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{text: s, valid: true}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		text := string(data)
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			text = formatNumber(f)
		}
		*v = Value{text: text, valid: true}
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*v = Value{text: buf.String(), valid: true}
	}
	return nil
}

// UnmarshalJSON accepts any token; anything but an object leaves Text unset.
func (c *Condition) UnmarshalJSON(data []byte) error {
	*c = Condition{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	type plain Condition
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Condition(p)
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
