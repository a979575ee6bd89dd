package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a string field that also accepts JSON numbers and booleans. The
// backend is not consistent about quoting ids and ages.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")) {
		*t = Text(data)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("text field: want a string, number or boolean, got %s", data)
	}
	*t = Text(n)
	return nil
}

func (t *Text) UnmarshalText(data []byte) error {
	*t = Text(data)
	return nil
}

func (t Text) String() string {
	return string(t)
}
