package bulk

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeLayout = Layout{
	Entity:     "foodplaces",
	Columns:    []string{"name", "lat", "long", "remarks"},
	MinColumns: 3,
	MaxColumns: 4,
	Fields:     []string{"name", "gps_lat", "gps_long", "remarks"},
	Nullable:   []string{"gps_lat", "gps_long"},
}

var performanceLayout = Layout{
	Entity:     "performances",
	Columns:    []string{"artist", "description", "date", "startTime", "endTime", "venue"},
	MinColumns: 6,
	MaxColumns: 6,
	Check: func(row []string) error {
		if row[2] == "someday" {
			return errors.New("invalid date")
		}
		return nil
	},
}

func TestReadCSV(t *testing.T) {
	input := "\xEF\xBB\xBFname,lat,long,remarks\n" +
		"Noodle Bar, 1.30, 103.8, near gate\n" +
		"\n" +
		"\"Curry, Rice\",1.31,103.9\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "lat", "long", "remarks"}, rows[0])
	assert.Equal(t, []string{"Curry, Rice", "1.31", "103.9"}, rows[2])
}

func TestLayout_Validate_Places(t *testing.T) {
	rows := [][]string{
		{"name", "lat", "long", "remarks"},
		{"Noodle Bar", "1.30", "103.8", "near gate"},
		{"Curry House", "1.31", "103.9"},
		{"Short", "1.0"},
		{"Blank Remark", "1.0", "2.0", "  "},
		{"", "1.0", "2.0"},
		{"Bad GPS", "north", "east"},
	}

	accepted, rejected := placeLayout.Validate(rows)

	assert.Len(t, accepted, 3)
	assert.Equal(t, []string{"Bad GPS", "north", "east"}, accepted[2])
	require.Len(t, rejected, 3)
	assert.Equal(t, 4, rejected[0].Row)
	assert.Contains(t, rejected[0].Reason, "at least 3 columns")
	assert.Contains(t, rejected[1].Reason, `"remarks"`)
	assert.Contains(t, rejected[2].Reason, `"name"`)
}

func TestLayout_Validate_PerformancesExactCount(t *testing.T) {
	rows := [][]string{
		{"Band A", "rock", "07/14/2025", "18:00", "19:00", "Main Stage"},
		{"Band B", "jazz", "07/14/2025", "19:00", "20:00", "Main Stage"},
		{"Band C", "pop", "07/14/2025", "20:00", "21:00", "Main Stage"},
		{"Band D", "folk", "07/15/2025", "18:00", "19:00", "Tent"},
		{"Band E", "indie", "07/15/2025", "19:00", "20:00", "Tent"},
		{"Band F", "metal", "07/15/2025", "20:00", "21:00"},
		{"Band G", "ska", "someday", "20:00", "21:00", "Tent"},
		{"Band H", "ska", "07/15/2025", "20:00", "21:00", "Tent", "extra"},
	}

	accepted, rejected := performanceLayout.Validate(rows)

	assert.Len(t, accepted, 5)
	require.Len(t, rejected, 3)
	assert.Equal(t, 6, rejected[0].Row)
	assert.Equal(t, "expected 6 columns, got 5", rejected[0].Reason)
	assert.Equal(t, "invalid date", rejected[1].Reason)
	assert.Equal(t, "expected 6 columns, got 7", rejected[2].Reason)
}

func TestLayout_RowsFromJSON(t *testing.T) {
	body := `[
		{"name":"Noodle Bar","gps_lat":1.3,"gps_long":103.8,"remarks":"near gate"},
		{"name":"Curry House","gps_lat":null,"gps_long":103.9,"remarks":""},
		{"name":"","gps_lat":1,"gps_long":2}
	]`

	rows, err := placeLayout.RowsFromJSON([]byte(body))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Noodle Bar", "1.3", "103.8", "near gate"}, rows[0])
	assert.Equal(t, []string{"Curry House", "null", "103.9"}, rows[1])

	accepted, rejected := placeLayout.Validate(rows)
	assert.Len(t, accepted, 2)
	assert.Len(t, rejected, 1)
}

func TestLayout_RowsFromJSON_Malformed(t *testing.T) {
	_, err := placeLayout.RowsFromJSON([]byte(`{"name":"not an array"}`))
	assert.Error(t, err)
}

func TestSpoolUpload_Cleanup(t *testing.T) {
	dir := t.TempDir()

	path, cleanup, err := SpoolUpload(dir, strings.NewReader("a,b,c\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n", string(data))

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPerformanceLayout_NormalizesSchedule(t *testing.T) {
	accepted, rejected := PerformanceLayout().Validate([][]string{
		{"artist", "description", "date", "startTime", "endTime", "venue"},
		{"Band A", "rock", "07/14/2025", "6:00 PM", "19:30:00", "Main Stage"},
		{"Band B", "jazz", "2025-13-01", "18:00", "19:00", "Main Stage"},
	})

	require.Len(t, accepted, 1)
	assert.Equal(t, []string{"Band A", "rock", "2025-07-14", "18:00", "19:30", "Main Stage"}, accepted[0])
	require.Len(t, rejected, 1)
	assert.Equal(t, 3, rejected[0].Row)
	assert.Contains(t, rejected[0].Reason, "invalid date")
}

func TestVenueLayout_SplitsGPSField(t *testing.T) {
	rows, err := VenueLayout().RowsFromJSON([]byte(`[
		{"name":"Main Stage","gps":"1.3521,103.8198"},
		{"name":"Tent","gps":"somewhere"}
	]`))
	require.NoError(t, err)

	accepted, rejected := VenueLayout().Validate(rows)
	require.Len(t, accepted, 1)
	assert.Equal(t, []string{"Main Stage", "1.3521", "103.8198"}, accepted[0])
	require.Len(t, rejected, 1)
	assert.Equal(t, "expected 3 columns, got 2", rejected[0].Reason)
}
