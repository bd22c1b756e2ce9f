// internal/matching/category_test.go
package matching

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Photographer ")
	require.NoError(t, err)
	assert.Equal(t, CategoryPhotographer, c)

	_, err = ParseCategory("balloons")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestPriorityMultiplier(t *testing.T) {
	assert.Equal(t, 1.5, PriorityHigh.Multiplier())
	assert.Equal(t, 1.0, PriorityMedium.Multiplier())
	assert.Equal(t, 0.7, PriorityLow.Multiplier())
	assert.Equal(t, 1.0, Priority("").Multiplier())
}

func TestVendorProfile_UnmarshalAttributes(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		validate func(t *testing.T, v *VendorProfile)
	}{
		{
			name:    "venue",
			payload: `{"id":"v1","category":"venue","attributes":{"venueType":"banquet","hasParking":true,"maxCapacity":250}}`,
			validate: func(t *testing.T, v *VendorProfile) {
				venue, ok := v.VenueAttrs()
				require.True(t, ok)
				assert.Equal(t, "banquet", venue.VenueType)
				assert.True(t, venue.HasParking)
				require.NotNil(t, v.MaxGuestCapacity())
				assert.Equal(t, 250, *v.MaxGuestCapacity())
			},
		},
		{
			name:    "videographer shares photographer shape",
			payload: `{"id":"v2","category":"videographer","attributes":{"hasDrone":true}}`,
			validate: func(t *testing.T, v *VendorProfile) {
				photo, ok := v.PhotographerAttrs()
				require.True(t, ok)
				assert.True(t, photo.HasDrone)
			},
		},
		{
			name:    "caterer capacity fallback",
			payload: `{"id":"v3","category":"caterer","attributes":{"maxGuests":80}}`,
			validate: func(t *testing.T, v *VendorProfile) {
				require.NotNil(t, v.MaxGuestCapacity())
				assert.Equal(t, 80, *v.MaxGuestCapacity())
			},
		},
		{
			name:    "no attributes",
			payload: `{"id":"v4","category":"makeup"}`,
			validate: func(t *testing.T, v *VendorProfile) {
				assert.Nil(t, v.Attributes)
				assert.Nil(t, v.MaxGuestCapacity())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v VendorProfile
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &v))
			tt.validate(t, &v)
		})
	}
}

func TestVendorProfile_UnmarshalBadAttributes(t *testing.T) {
	var v VendorProfile
	err := json.Unmarshal([]byte(`{"id":"v1","category":"venue","attributes":{"maxCapacity":"lots"}}`), &v)
	assert.Error(t, err)
}
