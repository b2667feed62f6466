package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LogEntry is one record returned by the /logs endpoint: a user action on a task.
// Entries carry no identity beyond their position in the response.
type LogEntry struct {
	UserName         string   `json:"user_name"`
	UserID           FlexText `json:"user_id"`
	Task             string   `json:"task"`
	TaskLink         string   `json:"task_link"`
	DatetimeCreating string   `json:"datetime_creating"`
}

// FlexText is a display string that decodes from any JSON scalar. Integer
// literals are kept verbatim ("42", not "42.0"); other numbers are shown in
// plain decimal notation ("1e3" becomes "1000"). Booleans become "true" or
// "false". Objects and arrays are rejected.
type FlexText string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}

	switch data[0] {
	case 'n':
		*f = ""
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = FlexText(strconv.FormatBool(b))
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexText(s)
		return nil
	case '{', '[':
		return fmt.Errorf("expected a scalar, got %s", data)
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a scalar, got %s", data)
	}
	*f = FlexText(formatNumber(n))
	return nil
}

func formatNumber(n json.Number) string {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		return lit
	}
	v, err := n.Float64()
	if err != nil {
		return lit
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String returns the text form.
func (f FlexText) String() string {
	return string(f)
}
