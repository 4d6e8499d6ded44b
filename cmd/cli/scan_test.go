package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePortSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []int
		wantErr bool
	}{
		{"single port", "80", []int{80}, false},
		{"port list", "80,443,22", []int{22, 80, 443}, false},
		{"simple range", "8000-8003", []int{8000, 8001, 8002, 8003}, false},
		{"mixed list and range", "22,80-82,443", []int{22, 80, 81, 82, 443}, false},
		{"duplicates collapse", "80,80,443,80", []int{80, 443}, false},
		{"overlapping range and port", "80,79-81", []int{79, 80, 81}, false},
		{"whitespace tolerated", " 22 , 80 - 82 ", []int{22, 80, 81, 82}, false},
		{"single-port range", "443-443", []int{443}, false},
		{"trailing comma", "22,", []int{22}, false},
		{"boundary ports", "1,65535", []int{1, 65535}, false},
		{"empty spec", "", nil, true},
		{"whitespace only", "   ", nil, true},
		{"commas only", ",,,", nil, true},
		{"port zero", "0", nil, true},
		{"port too large", "65536", nil, true},
		{"negative port", "-1", nil, true},
		{"reversed range", "100-50", nil, true},
		{"range end too large", "65530-65536", nil, true},
		{"malformed range", "1-2-3", nil, true},
		{"not a number", "http", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePortSpec(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClipBanner(t *testing.T) {
	assert.Equal(t, "short", clipBanner("short"))

	exact := strings.Repeat("x", bannerDisplayWidth)
	assert.Equal(t, exact, clipBanner(exact))

	long := strings.Repeat("x", bannerDisplayWidth+10)
	assert.Equal(t, strings.Repeat("x", bannerDisplayWidth)+"...", clipBanner(long))

	// Multi-byte runes must never be split mid-sequence.
	multibyte := strings.Repeat("é", bannerDisplayWidth+10)
	clipped := clipBanner(multibyte)
	assert.Equal(t, strings.Repeat("é", bannerDisplayWidth)+"...", clipped)
	assert.True(t, utf8.ValidString(clipped))
}

func TestParsePortSpecFullRange(t *testing.T) {
	ports, err := parsePortSpec("1-65535")
	require.NoError(t, err)
	require.Len(t, ports, 65535)
	assert.Equal(t, 1, ports[0])
	assert.Equal(t, 65535, ports[len(ports)-1])
}
