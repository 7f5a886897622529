package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name              string
		page, limit       int
		wantPage, wantLim int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative", -3, -1, 1, 20},
		{"too large", 2, 1000, 2, 100},
		{"in range", 4, 50, 4, 50},
		{"huge page", math.MaxInt, 100, math.MaxInt/100 + 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ClampPage(tt.page, tt.limit, 20, 100)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLim, limit)
			assert.GreaterOrEqual(t, (page-1)*limit, 0)
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "admin", NormalizeUsername("  admin "))
	assert.Equal(t, "admin", NormalizeUsername("ａｄｍｉｎ"))
	assert.Equal(t, "café", NormalizeUsername("café"))
}
