package enum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean the loyalty API sends as 0/1, true/false or a quoted variant of either.
// It is always written back as 0 or 1.
type Flag bool

const (
	FlagOff Flag = false
	FlagOn  Flag = true
)

func (f Flag) Bool() bool {
	return bool(f)
}

func (f Flag) Int() int {
	if f {
		return 1
	}
	return 0
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(f.Int())), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlagOff
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw = str
	}

	v, err := ParseFlag(raw)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFlag parses the spellings of a flag accepted from the API and from query strings
func ParseFlag(raw string) (Flag, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on", "active":
		return FlagOn, nil
	case "0", "false", "no", "off", "inactive", "":
		return FlagOff, nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Flag(n != 0), nil
	}
	return FlagOff, fmt.Errorf("invalid flag value %q", raw)
}
