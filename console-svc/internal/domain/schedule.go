package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
}

// NormalizeDate accepts ISO dates, US mm/dd/yyyy dates and RFC 3339
// timestamps and returns YYYY-MM-DD.
func NormalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", Invalid("invalid date %q", value)
}

// NormalizeTime returns HH:MM in 24h form.
func NormalizeTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", Invalid("invalid time %q", value)
}

func (s DateTimeSlot) Normalize() (DateTimeSlot, error) {
	var err error
	out := DateTimeSlot{}
	if out.Date, err = NormalizeDate(s.Date); err != nil {
		return out, err
	}
	if out.StartTime, err = NormalizeTime(s.StartTime); err != nil {
		return out, err
	}
	if out.EndTime, err = NormalizeTime(s.EndTime); err != nil {
		return out, err
	}
	return out, nil
}

// ParseCoordinate coerces a CSV cell to a coordinate; anything that is not a
// finite number becomes nil.
func ParseCoordinate(value string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseLatitude is ParseCoordinate limited to -90..90.
func ParseLatitude(value string) *float64 {
	return withinRange(ParseCoordinate(value), 90)
}

// ParseLongitude is ParseCoordinate limited to -180..180.
func ParseLongitude(value string) *float64 {
	return withinRange(ParseCoordinate(value), 180)
}

func withinRange(v *float64, limit float64) *float64 {
	if v == nil || *v < -limit || *v > limit {
		return nil
	}
	return v
}

func (in PlaceInput) Place() (Place, error) {
	lat, long := in.GPS[0], in.GPS[1]
	if lat < -90 || lat > 90 {
		return Place{}, Invalid("latitude %v out of range", lat)
	}
	if long < -180 || long > 180 {
		return Place{}, Invalid("longitude %v out of range", long)
	}
	return Place{
		Name:    strings.TrimSpace(in.Name),
		Lat:     &lat,
		Long:    &long,
		Remarks: in.Remarks,
	}, nil
}
