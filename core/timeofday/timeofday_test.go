package timeofday

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Time
		wantErr bool
	}{
		{"09:00", New(9, 0, 0), false},
		{"09:30:15", New(9, 30, 15), false},
		{" 23:59 ", New(23, 59, 0), false},
		{"24:00", 0, true},
		{"9am", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan(t *testing.T) {
	var tod Time

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 10, 15, 0, 0, time.UTC)))
	assert.Equal(t, "10:15", tod.String())

	require.NoError(t, tod.Scan([]byte("08:00:00.000000")))
	assert.Equal(t, New(8, 0, 0), tod)

	assert.Error(t, tod.Scan(42))
}

func TestValueAndJSON(t *testing.T) {
	v, err := New(7, 5, 0).Value()
	require.NoError(t, err)
	assert.Equal(t, "07:05:00", v)

	b, err := json.Marshal(New(14, 0, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `"14:00"`, string(b))

	var got Time
	require.NoError(t, json.Unmarshal([]byte(`"14:30"`), &got))
	assert.Equal(t, New(14, 30, 0), got)
}

func TestOn(t *testing.T) {
	d := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 45, 0, 0, time.UTC), New(9, 45, 0).On(d))
}
