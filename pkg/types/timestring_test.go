package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid", input: "09:30", want: "09:30"},
		{name: "with seconds", input: "09:30:00", want: "09:30"},
		{name: "single digit hour", input: "9:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("10:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 645, m)

	_, err = TimeString("10:5").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// Переход за полночь недопустим
	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:15"))
	assert.True(t, TimeString("10:00").IsAfter("09:45"))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 10, 14, 5, 59, 0, time.UTC))
	assert.Equal(t, TimeString("14:05"), ts)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:30:00"))
	assert.Equal(t, TimeString("08:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("11:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "11:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.Error(t, err)
}
