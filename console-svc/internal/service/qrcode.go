package service

import (
	"fmt"
	"net/url"
	"strings"

	"event-console/console-svc/internal/domain"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(venue domain.Venue) ([]byte, error)
}

// DefaultQRGenerator encodes a geo: URI when the venue GPS holds a
// "lat,long" pair and falls back to the plain name and GPS text otherwise.
type DefaultQRGenerator struct {
	Size int
}

func (g DefaultQRGenerator) Generate(venue domain.Venue) ([]byte, error) {
	size := g.Size
	if size == 0 {
		size = 256
	}
	return qrcode.Encode(VenueQRPayload(venue), qrcode.Medium, size)
}

func VenueQRPayload(venue domain.Venue) string {
	lat, long, ok := strings.Cut(venue.GPS, ",")
	if ok {
		latV := domain.ParseCoordinate(lat)
		longV := domain.ParseCoordinate(long)
		if latV != nil && longV != nil {
			coords := fmt.Sprintf("%g,%g", *latV, *longV)
			return "geo:" + coords + "?q=" + coords + "(" + url.QueryEscape(venue.Name) + ")"
		}
	}
	if venue.GPS == "" {
		return venue.Name
	}
	return venue.Name + " " + venue.GPS
}
