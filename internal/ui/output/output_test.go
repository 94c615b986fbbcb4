package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rsnakamura/theape/internal/ui/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorProfile(t *testing.T) {
	// Test that NO_COLOR forces Ascii profile
	t.Setenv("NO_COLOR", "1")
	p := output.ColorProfile()
	assert.Equal(t, termenv.Ascii, p, "NO_COLOR should force Ascii profile")

	t.Setenv("NO_COLOR", "")
	p = output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestColorProfileANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ColorProfileANSI())

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfileANSI())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	assert.NotNil(t, out)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
}

func TestNew_Nil(t *testing.T) {
	// Should default to stderr, we just check it doesn't panic
	out := output.New(nil)
	assert.NotNil(t, out)
}

func TestForMode(t *testing.T) {
	var buf bytes.Buffer
	out := output.ForMode(&buf, output.ModePlain)
	assert.Equal(t, termenv.Ascii, out.Profile)

	_, _ = out.WriteString("hello")
	assert.Equal(t, "hello", buf.String())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Mode
		wantErr bool
	}{
		{in: "", want: output.ModeAuto},
		{in: "auto", want: output.ModeAuto},
		{in: "pretty", want: output.ModePretty},
		{in: "plain", want: output.ModePlain},
		{in: "fancy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := output.ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, output.ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
