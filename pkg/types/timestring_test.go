package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "hours and minutes", input: "09:00", want: "09:00"},
		{name: "seconds are rejected", input: "10:00:59", wantErr: true},
		{name: "garbage", input: "nine", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseStoredTimeString(t *testing.T) {
	got, err := ParseStoredTimeString("18:00:00")
	require.NoError(t, err)
	assert.Equal(t, "18:00", got.String())

	got, err = ParseStoredTimeString("09:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.String())

	_, err = ParseStoredTimeString("nine")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:00:00")))
	assert.Equal(t, "10:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "14:30", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Compare(t *testing.T) {
	nine := MustTimeString("09:00")
	ten := MustTimeString("10:00")

	assert.True(t, nine.IsBefore(ten))
	assert.False(t, ten.IsBefore(nine))
	assert.True(t, ten.Equal(MustTimeString("10:00")))
	assert.False(t, ten.Equal(TimeString{}))
}

func TestTimeString_JSON(t *testing.T) {
	type wrapper struct {
		Time TimeString `json:"time"`
	}

	data, err := json.Marshal(wrapper{Time: MustTimeString("17:00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":"17:00"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Time.Equal(MustTimeString("17:00")))
}
