package domain

import (
	"io"
	"time"
)

// PlaceKind selects one of the three tables that share the Place shape.
type PlaceKind string

const (
	FoodPlaces PlaceKind = "foodplaces"
	Toilets    PlaceKind = "toilets"
	Parking    PlaceKind = "parking"
)

var PlaceKinds = []PlaceKind{FoodPlaces, Toilets, Parking}

func (k PlaceKind) Table() string {
	switch k {
	case FoodPlaces:
		return "food_places"
	case Toilets:
		return "toilets"
	case Parking:
		return "parking_spots"
	}
	return ""
}

func (k PlaceKind) Valid() bool {
	return k.Table() != ""
}

type Place struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Lat     *float64 `json:"gps_lat"`
	Long    *float64 `json:"gps_long"`
	Remarks string   `json:"remarks"`
}

// PlaceInput is the create/update payload; gps is [latitude, longitude].
type PlaceInput struct {
	Name    string    `json:"name" validate:"required"`
	GPS     []float64 `json:"gps" validate:"required,len=2"`
	Remarks string    `json:"remarks"`
}

type Venue struct {
	ID       int    `json:"id"`
	Name     string `json:"name" validate:"required"`
	GPS      string `json:"gps"`
	Selected bool   `json:"selected"`
}

type DateTimeSlot struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

type Performance struct {
	ID          int            `json:"performance_id"`
	Artist      string         `json:"artist" validate:"required"`
	Description string         `json:"description"`
	Venue       string         `json:"venue" validate:"required"`
	Photo       string         `json:"photo,omitempty"`
	DateTimes   []DateTimeSlot `json:"dateTimes" validate:"required,min=1,dive"`
}

type Experience struct {
	ID          int    `json:"experience_id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Venue       string `json:"venue" validate:"required"`
	Photo       string `json:"photo,omitempty"`
}

type MenuItem struct {
	ID       int    `json:"menu_id"`
	Name     string `json:"name" validate:"required"`
	Position int    `json:"position"`
}

type MenuPosition struct {
	ID       int `json:"id" validate:"required"`
	Position int `json:"position" validate:"min=1"`
}

type AdminUser struct {
	ID           int
	Username     string
	PasswordHash string
}

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Upload is a photo received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ActivityEvent is published to Kafka after every successful write.
type ActivityEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity"`
	ID        int       `json:"id,omitempty"`
	Count     int       `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ActivityCreated      = "created"
	ActivityUpdated      = "updated"
	ActivityDeleted      = "deleted"
	ActivitySelected     = "selected"
	ActivityBulkImported = "bulk_imported"
	ActivityReordered    = "reordered"
)
