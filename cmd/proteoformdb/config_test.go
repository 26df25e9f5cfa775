package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		want    any
		wantErr bool
	}{
		{"string key", "organism", "Homo sapiens", "Homo sapiens", false},
		{"int key", "max-heterozygous", "8", int64(8), false},
		{"flank length", "flank-length", "2500", int64(2500), false},
		{"workers zero", "workers", "0", int64(0), false},
		{"non-integer", "workers", "many", nil, true},
		{"negative", "flank-length", "-1", nil, true},
		{"unknown key", "genome-build", "GRCh38", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseConfigValue(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupConfigKey(t *testing.T) {
	k, ok := lookupConfigKey("max-heterozygous")
	require.True(t, ok)
	assert.Equal(t, "max-heterozygous", k.name)

	_, ok = lookupConfigKey("nope")
	assert.False(t, ok)
}
