package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownSetting is returned for a key that names no setting.
var ErrUnknownSetting = errors.New("unknown setting")

func (s Settings) sections() (map[string]map[string]any, error) {
	data, err := s.Encode()
	if err != nil {
		return nil, err
	}
	var m map[string]map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return m, nil
}

// Keys lists every "section.field" key in sorted order.
func (s Settings) Keys() []string {
	m, err := s.sections()
	if err != nil {
		return nil
	}
	var keys []string
	for section, fields := range m {
		for field := range fields {
			keys = append(keys, section+"."+field)
		}
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a "section.field" key as text.
func (s Settings) Get(key string) (string, error) {
	m, err := s.sections()
	if err != nil {
		return "", err
	}
	section, field, ok := strings.Cut(key, ".")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	v, ok := m[section][field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	return fmt.Sprint(v), nil
}

// With returns a copy of s with the "section.field" key set from text.
// Boolean settings accept any value strconv.ParseBool does. The result is
// not validated.
func (s Settings) With(key, value string) (Settings, error) {
	m, err := s.sections()
	if err != nil {
		return s, err
	}
	section, field, ok := strings.Cut(key, ".")
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	current, ok := m[section][field]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	switch current.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%s: %q is not a boolean", key, value)
		}
		m[section][field] = b
	default:
		m[section][field] = value
	}

	data, err := json.Marshal(m)
	if err != nil {
		return s, fmt.Errorf("failed to encode settings: %w", err)
	}
	out := s
	if err := json.Unmarshal(data, &out); err != nil {
		return s, fmt.Errorf("failed to decode settings: %w", err)
	}
	return out, nil
}
