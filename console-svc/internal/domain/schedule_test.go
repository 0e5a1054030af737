package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2025-07-14", want: "2025-07-14"},
		{in: "07/14/2025", want: "2025-07-14"},
		{in: "7/4/2025", want: "2025-07-04"},
		{in: " 2025-07-14T00:00:00Z ", want: "2025-07-14"},
		{in: "14/07/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := NormalizeDate(tc.in)
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	got, err := NormalizeTime("9:30 PM")
	require.NoError(t, err)
	assert.Equal(t, "21:30", got)

	got, err = NormalizeTime("18:05:00")
	require.NoError(t, err)
	assert.Equal(t, "18:05", got)

	_, err = NormalizeTime("25:00")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseCoordinate(t *testing.T) {
	c := ParseCoordinate(" 1.3521 ")
	require.NotNil(t, c)
	assert.InDelta(t, 1.3521, *c, 1e-9)

	assert.Nil(t, ParseCoordinate("north"))
	assert.Nil(t, ParseCoordinate("NaN"))
	assert.Nil(t, ParseCoordinate(""))
}

func TestPlaceInput_Place(t *testing.T) {
	p, err := PlaceInput{Name: " Hawker ", GPS: []float64{1.29, 103.85}, Remarks: "halal"}.Place()
	require.NoError(t, err)
	assert.Equal(t, "Hawker", p.Name)
	assert.InDelta(t, 1.29, *p.Lat, 1e-9)
	assert.InDelta(t, 103.85, *p.Long, 1e-9)

	_, err = PlaceInput{Name: "x", GPS: []float64{91, 0}}.Place()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceKind_Table(t *testing.T) {
	assert.Equal(t, "food_places", FoodPlaces.Table())
	assert.Equal(t, "toilets", Toilets.Table())
	assert.Equal(t, "parking_spots", Parking.Table())
	assert.False(t, PlaceKind("stages").Valid())
}

func TestParseLatitudeLongitude(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) *float64
		in    string
		want  *float64
	}{
		{"latitude in range", ParseLatitude, "-89.5", ptr(-89.5)},
		{"latitude boundary", ParseLatitude, "90", ptr(90)},
		{"latitude too large", ParseLatitude, "91", nil},
		{"latitude not a number", ParseLatitude, "north", nil},
		{"longitude in range", ParseLongitude, "103.8", ptr(103.8)},
		{"longitude boundary", ParseLongitude, "-180", ptr(-180)},
		{"longitude too small", ParseLongitude, "-180.01", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.parse(tt.in))
		})
	}
}

func ptr(f float64) *float64 { return &f }
