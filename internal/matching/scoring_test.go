// internal/matching/scoring_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_VenueBreakdown(t *testing.T) {
	vendor := createTestVendor()
	params := createTestParams()

	result := Score(vendor, params, 40000)

	assert.Equal(t, 5, result.CategoryScores.Base)
	assert.Equal(t, 0, result.CategoryScores.Style)
	assert.Equal(t, 18, result.CategoryScores.Rating)
	assert.Equal(t, 20, result.CategoryScores.Budget)
	assert.Equal(t, 10, result.CategoryScores.Location)
	assert.Equal(t, 5, result.CategoryScores.Verification)
	assert.Equal(t, 0, result.CategoryScores.Language)
	assert.Equal(t, 0, result.CategoryScores.Experience)
	assert.Equal(t, 15, result.CategoryScores.CategorySpecific)
	assert.Equal(t, 73, result.Score)

	require.Len(t, result.Reasons, 5)
	assert.Equal(t, ReasonRating, result.Reasons[0].Type)
	assert.Equal(t, ReasonBudget, result.Reasons[1].Type)
	assert.Equal(t, ReasonLocation, result.Reasons[2].Type)
	assert.Equal(t, ReasonVerification, result.Reasons[3].Type)
	assert.Equal(t, ReasonFeature, result.Reasons[4].Type)
}

func TestScore_ReasonsTruncatedInOrder(t *testing.T) {
	vendor := createTestVendor()
	vendor.Styles = []string{"Rustic"}
	params := createTestParams()

	result := Score(vendor, params, 40000)

	assert.Equal(t, 25, result.CategoryScores.Style)
	assert.Equal(t, 98, result.Score)
	require.Len(t, result.Reasons, maxReasons)
	assert.Equal(t, ReasonStyle, result.Reasons[0].Type)
	assert.Equal(t, ReasonVerification, result.Reasons[4].Type)
}

func TestScore_ClampedAt100(t *testing.T) {
	vendor := createTestVendor()
	vendor.Styles = []string{"rustic"}
	vendor.Languages = []string{"UZ"}
	vendor.Rating = floatPtr(5)
	params := createTestParams()

	result := Score(vendor, params, 40000)

	assert.Equal(t, 10, result.CategoryScores.Language)
	assert.Greater(t, result.CategoryScores.Total(), 100)
	assert.Equal(t, 100, result.Score)
}

func TestScore_StylePartialMatch(t *testing.T) {
	vendor := createTestVendor()
	vendor.Styles = []string{"modern"}
	params := createTestParams()
	params.Styles = []string{"boho"}

	result := Score(vendor, params, 40000)
	assert.Equal(t, 10, result.CategoryScores.Style)

	params.Styles = []string{"boho", "Modern"}
	result = Score(vendor, params, 40000)
	assert.Equal(t, 25, result.CategoryScores.Style)
}

func TestScore_BudgetFitBands(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  int
	}{
		{"well under budget", 20000, 15},
		{"at 80 percent", 32000, 15},
		{"just above 80 percent", 32001, 20},
		{"exactly at budget", 40000, 20},
		{"slightly above budget", 44000, 10},
		{"at flexibility ceiling", 48000, 10},
		{"beyond ceiling", 52000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vendor := createTestVendor()
			vendor.StartingPrice = floatPtr(tt.price)
			result := Score(vendor, createTestParams(), 40000)
			assert.Equal(t, tt.want, result.CategoryScores.Budget)
		})
	}
}

func TestScore_NoPriceOrBudget(t *testing.T) {
	vendor := createTestVendor()
	vendor.StartingPrice = nil
	result := Score(vendor, createTestParams(), 40000)
	assert.Equal(t, 0, result.CategoryScores.Budget)

	vendor = createTestVendor()
	result = Score(vendor, createTestParams(), 0)
	assert.Equal(t, 0, result.CategoryScores.Budget)
}

func TestScore_CategorySpecific(t *testing.T) {
	tests := []struct {
		name   string
		vendor *VendorProfile
		params func(p *WeddingMatchParams)
		want   int
	}{
		{
			name: "venue features",
			vendor: &VendorProfile{
				Category: CategoryVenue,
				Attributes: &VenueAttributes{
					VenueType:       "Banquet",
					HasParking:      true,
					HasOutdoorSpace: true,
					MinCapacity:     intPtr(100),
					MaxCapacity:     intPtr(200),
				},
			},
			params: func(p *WeddingMatchParams) {
				p.Preferences.VenueType = "banquet"
				p.Preferences.ParkingNeeded = true
				p.Preferences.OutdoorPreferred = true
			},
			want: 35,
		},
		{
			name: "venue parking not requested",
			vendor: &VendorProfile{
				Category:   CategoryVenue,
				Attributes: &VenueAttributes{HasParking: true},
			},
			want: 0,
		},
		{
			name: "caterer cuisine capped",
			vendor: &VendorProfile{
				Category: CategoryCaterer,
				Attributes: &CatererAttributes{
					CuisineTypes:   []string{"Uzbek", "Italian", "French", "Turkish"},
					DietaryOptions: []string{"halal"},
					MaxGuests:      intPtr(500),
				},
			},
			params: func(p *WeddingMatchParams) {
				p.Preferences.Cuisines = []string{"uzbek", "italian", "french", "turkish"}
				p.Preferences.Dietary = []string{"Halal"}
			},
			want: 35,
		},
		{
			name: "caterer two cuisines",
			vendor: &VendorProfile{
				Category:   CategoryCaterer,
				Attributes: &CatererAttributes{CuisineTypes: []string{"Uzbek", "Italian"}},
			},
			params: func(p *WeddingMatchParams) {
				p.Preferences.Cuisines = []string{"uzbek", "italian", "uzbek"}
			},
			want: 10,
		},
		{
			name: "photographer full kit on a large wedding",
			vendor: &VendorProfile{
				Category: CategoryPhotographer,
				Attributes: &PhotographerAttributes{
					PhotoStyles:      []string{"documentary"},
					HasDrone:         true,
					ProvidesSDE:      true,
					HasSecondShooter: true,
				},
			},
			params: func(p *WeddingMatchParams) {
				p.GuestCount = 250
				p.Preferences.PhotoStyles = []string{"Documentary"}
				p.Preferences.DroneRequested = true
				p.Preferences.SDERequested = true
			},
			want: 45,
		},
		{
			name: "videographer style falls back to wedding styles",
			vendor: &VendorProfile{
				Category:   CategoryVideographer,
				Attributes: &PhotographerAttributes{PhotoStyles: []string{"rustic"}, HasSecondShooter: true},
			},
			want: 15,
		},
		{
			name: "music",
			vendor: &VendorProfile{
				Category: CategoryMusic,
				Attributes: &MusicianAttributes{
					Genres:                 []string{"pop", "jazz", "folk"},
					MusicianType:           "band",
					SoundEquipmentIncluded: true,
				},
			},
			params: func(p *WeddingMatchParams) {
				p.Preferences.MusicGenres = []string{"Jazz", "Folk"}
				p.Preferences.MusicianType = "Band"
			},
			want: 25,
		},
		{
			name: "florist uses decorator attributes",
			vendor: &VendorProfile{
				Category:   CategoryFlorist,
				Attributes: &DecoratorAttributes{Provides3DVisualization: true, ReuseItems: true},
			},
			want: 15,
		},
		{
			name: "mismatched attribute shape is ignored",
			vendor: &VendorProfile{
				Category:   CategoryMusic,
				Attributes: &DecoratorAttributes{Provides3DVisualization: true},
			},
			want: 0,
		},
		{
			name:   "category without rules",
			vendor: &VendorProfile{Category: CategoryMakeup},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := createTestParams()
			if tt.params != nil {
				tt.params(params)
			}
			result := Score(tt.vendor, params, 0)
			assert.Equal(t, tt.want, result.CategoryScores.CategorySpecific)
		})
	}
}
