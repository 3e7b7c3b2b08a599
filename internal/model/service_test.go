package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.NoError(t, catalog.Validate())
	require.Len(t, catalog, 2)

	hair, ok := catalog.Find("hair")
	require.True(t, ok)
	assert.Equal(t, 30, hair.Duration)

	combo, ok := catalog.Find("combo")
	require.True(t, ok)
	assert.Equal(t, 60, combo.Duration)
}

func TestCatalogLabelOfFallsBackToID(t *testing.T) {
	catalog := DefaultCatalog()
	assert.Equal(t, "Hair + Beard", catalog.LabelOf("combo"))
	assert.Equal(t, "shave", catalog.LabelOf("shave"))
}

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog("hair:Haircut:30, shave:Hot Shave:45")
	require.NoError(t, err)
	assert.Equal(t, Catalog{
		{ID: "hair", Label: "Haircut", Duration: 30},
		{ID: "shave", Label: "Hot Shave", Duration: 45},
	}, catalog)
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrEmptyCatalog},
		{"missing field", "hair:30", ErrInvalidService},
		{"bad duration", "hair:Haircut:abc", ErrInvalidService},
		{"zero duration", "hair:Haircut:0", ErrInvalidService},
		{"duplicate", "hair:Haircut:30,hair:Again:60", ErrDuplicateService},
		{"id too long", strings.Repeat("x", MaxServiceIDLen+1) + ":Long:30", ErrInvalidService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
