package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "canonical 13 digits", input: "5531998765432", want: "5531998765432"},
		{name: "12 digits without nine", input: "553198765432", want: "5531998765432"},
		{name: "11 digits ddd plus nine", input: "31998765432", want: "5531998765432"},
		{name: "10 digits ddd without nine", input: "3198765432", want: "5531998765432"},
		{name: "9 digits bare number", input: "998765432", want: "5531998765432"},
		{name: "8 digits legacy number", input: "98765432", want: "5531998765432"},
		{name: "formatted input", input: "+55 (31) 99876-5432", want: "5531998765432"},
		{name: "with separators", input: "31 9 9876-5432", want: "5531998765432"},
		{name: "empty", input: "", want: ""},
		{name: "no digits at all", input: "---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "+55 (31) 99876-5432", FormatDisplay("5531998765432"))
	assert.Equal(t, "+55 (31) 99876-5432", FormatDisplay("31998765432"))
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("31998765432", "+55 (31) 99876-5432"))
	assert.True(t, Match("98765432", "5531998765432"))
	assert.False(t, Match("31998765432", "31998765433"))
	assert.False(t, Match("", ""))
}
