package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name       string `json:"name" validate:"notblank"`
	Day        string `json:"day_of_week" validate:"weekday"`
	Start      string `json:"start_time" validate:"hhmm"`
	Recurrence string `json:"recurrence_type" validate:"omitempty,recurrence"`
	Role       string `json:"role" validate:"omitempty,role"`
	Email      string `json:"email" validate:"omitempty,email"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		in     sample
		fields []string
	}{
		{
			name: "valid",
			in:   sample{Name: "Math", Day: "MON", Start: "09:00", Recurrence: "weekly", Role: "teacher"},
		},
		{
			name:   "blank and bad enums",
			in:     sample{Name: "  ", Day: "MONDAY", Start: "9", Recurrence: "yearly", Role: "root"},
			fields: []string{"name", "day_of_week", "start_time", "recurrence_type", "role"},
		},
		{
			name:   "builtin tag uses json name",
			in:     sample{Name: "x", Day: "SUN", Start: "23:30", Email: "nope"},
			fields: []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			assert.Equal(t, len(tt.fields) > 0, res.HasError())

			got := make([]string, 0, len(res.Errors))
			for _, v := range res.Errors {
				got = append(got, v.Field)
				assert.NotEmpty(t, v.Message)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}
