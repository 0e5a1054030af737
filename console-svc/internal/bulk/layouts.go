package bulk

import (
	"strings"

	"event-console/console-svc/internal/domain"
)

// PlaceLayout covers food places, toilets and parking spots: remarks are
// optional, coordinates that do not parse are stored as NULL.
func PlaceLayout(kind domain.PlaceKind) Layout {
	return Layout{
		Entity:     string(kind),
		Columns:    []string{"name", "lat", "long", "remarks"},
		MinColumns: 3,
		MaxColumns: 4,
		Fields:     []string{"name", "gps_lat", "gps_long", "remarks"},
		Nullable:   []string{"gps_lat", "gps_long"},
	}
}

func VenueLayout() Layout {
	return Layout{
		Entity:     "venues",
		Columns:    []string{"name", "lat", "long"},
		MinColumns: 3,
		MaxColumns: 3,
		Fields:     []string{"name", "lat", "long"},
		FromObject: func(obj map[string]string) []string {
			if gps, ok := obj["gps"]; ok {
				return append([]string{obj["name"]}, strings.Split(gps, ",")...)
			}
			return []string{obj["name"], obj["lat"], obj["long"]}
		},
	}
}

func PerformanceLayout() Layout {
	return Layout{
		Entity:     "performances",
		Columns:    []string{"artist", "description", "date", "startTime", "endTime", "venue"},
		MinColumns: 6,
		MaxColumns: 6,
		Fields:     []string{"artist", "description", "date", "startTime", "endTime", "venue"},
		Check:      checkSchedule,
	}
}

func ExperienceLayout() Layout {
	return Layout{
		Entity:     "experiences",
		Columns:    []string{"title", "description", "date", "startTime", "endTime", "venue"},
		MinColumns: 6,
		MaxColumns: 6,
		Fields:     []string{"title", "description", "date", "startTime", "endTime", "venue"},
		Check:      checkSchedule,
	}
}

// checkSchedule validates and normalizes the date and time cells in place.
func checkSchedule(row []string) error {
	slot, err := domain.DateTimeSlot{Date: row[2], StartTime: row[3], EndTime: row[4]}.Normalize()
	if err != nil {
		return err
	}
	row[2], row[3], row[4] = slot.Date, slot.StartTime, slot.EndTime
	return nil
}
