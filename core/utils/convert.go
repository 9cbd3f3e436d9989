package utils

import (
	"fmt"
	"strconv"
	"time"
	"trainhub-api/core/constants"

	"github.com/google/uuid"
)

func ToUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// ToUUIDPtr returns nil for an empty string.
func ToUUIDPtr(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case uuid.UUID:
		return x.String()
	case *uuid.UUID:
		if x == nil {
			return ""
		}
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func ToNumberWithDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParseDate parses a YYYY-MM-DD date in UTC. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Ptr[T any](v T) *T {
	return &v
}
