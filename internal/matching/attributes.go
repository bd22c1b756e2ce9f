// internal/matching/attributes.go
package matching

import (
	"encoding/json"
	"fmt"
)

// Attributes is the per-category attribute bag of a vendor profile. The concrete
// type is fixed by the vendor's category; read it through the typed accessors on
// VendorProfile.
type Attributes interface {
	forCategory(c Category) bool
}

type VenueAttributes struct {
	VenueType       string `json:"venueType,omitempty"`
	HasParking      bool   `json:"hasParking"`
	HasOutdoorSpace bool   `json:"hasOutdoorSpace"`
	MinCapacity     *int   `json:"minCapacity,omitempty"`
	MaxCapacity     *int   `json:"maxCapacity,omitempty"`
}

type CatererAttributes struct {
	CuisineTypes   []string `json:"cuisineTypes,omitempty"`
	DietaryOptions []string `json:"dietaryOptions,omitempty"`
	MaxGuests      *int     `json:"maxGuests,omitempty"`
}

// PhotographerAttributes covers both photographers and videographers.
type PhotographerAttributes struct {
	PhotoStyles      []string `json:"photoStyles,omitempty"`
	HasDrone         bool     `json:"hasDrone"`
	ProvidesSDE      bool     `json:"providesSDE"`
	HasSecondShooter bool     `json:"hasSecondShooter"`
}

type MusicianAttributes struct {
	Genres                 []string `json:"genres,omitempty"`
	MusicianType           string   `json:"musicianType,omitempty"`
	SoundEquipmentIncluded bool     `json:"soundEquipmentIncluded"`
}

// DecoratorAttributes covers both decorators and florists.
type DecoratorAttributes struct {
	Provides3DVisualization bool `json:"provides3DVisualization"`
	ReuseItems              bool `json:"reuseItems"`
}

func (VenueAttributes) forCategory(c Category) bool   { return c == CategoryVenue }
func (CatererAttributes) forCategory(c Category) bool { return c == CategoryCaterer }
func (MusicianAttributes) forCategory(c Category) bool {
	return c == CategoryMusic
}
func (PhotographerAttributes) forCategory(c Category) bool {
	return c == CategoryPhotographer || c == CategoryVideographer
}
func (DecoratorAttributes) forCategory(c Category) bool {
	return c == CategoryDecorator || c == CategoryFlorist
}

// DecodeAttributes parses a raw attribute blob into the shape owned by category.
// Categories without a shape, and empty or null blobs, yield nil.
func DecodeAttributes(category Category, raw []byte) (Attributes, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var target Attributes
	switch category {
	case CategoryVenue:
		target = &VenueAttributes{}
	case CategoryCaterer:
		target = &CatererAttributes{}
	case CategoryPhotographer, CategoryVideographer:
		target = &PhotographerAttributes{}
	case CategoryMusic:
		target = &MusicianAttributes{}
	case CategoryDecorator, CategoryFlorist:
		target = &DecoratorAttributes{}
	default:
		return nil, nil
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode %s attributes: %w", category, err)
	}
	return target, nil
}

func (v *VendorProfile) attrs() Attributes {
	if v.Attributes == nil || !v.Attributes.forCategory(v.Category) {
		return nil
	}
	return v.Attributes
}

func (v *VendorProfile) VenueAttrs() (*VenueAttributes, bool) {
	a, ok := v.attrs().(*VenueAttributes)
	return a, ok
}

func (v *VendorProfile) CatererAttrs() (*CatererAttributes, bool) {
	a, ok := v.attrs().(*CatererAttributes)
	return a, ok
}

func (v *VendorProfile) PhotographerAttrs() (*PhotographerAttributes, bool) {
	a, ok := v.attrs().(*PhotographerAttributes)
	return a, ok
}

func (v *VendorProfile) MusicianAttrs() (*MusicianAttributes, bool) {
	a, ok := v.attrs().(*MusicianAttributes)
	return a, ok
}

func (v *VendorProfile) DecoratorAttrs() (*DecoratorAttributes, bool) {
	a, ok := v.attrs().(*DecoratorAttributes)
	return a, ok
}

// MaxGuestCapacity prefers the profile column and falls back to the category attributes.
func (v *VendorProfile) MaxGuestCapacity() *int {
	if v.CapacityMax != nil {
		return v.CapacityMax
	}
	if venue, ok := v.VenueAttrs(); ok && venue.MaxCapacity != nil {
		return venue.MaxCapacity
	}
	if caterer, ok := v.CatererAttrs(); ok && caterer.MaxGuests != nil {
		return caterer.MaxGuests
	}
	return nil
}

// MinGuestRequirement prefers the profile column and falls back to venue attributes.
func (v *VendorProfile) MinGuestRequirement() *int {
	if v.CapacityMin != nil {
		return v.CapacityMin
	}
	if venue, ok := v.VenueAttrs(); ok && venue.MinCapacity != nil {
		return venue.MinCapacity
	}
	return nil
}
