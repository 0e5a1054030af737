package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"event-console/console-svc/internal/bulk"
	"event-console/console-svc/internal/domain"
)

var (
	// ErrNoValidRows is returned with a report when every row was rejected.
	ErrNoValidRows = fmt.Errorf("%w: no valid rows to import", domain.ErrValidation)
	// ErrBulkInsert wraps a failed bulk transaction; nothing was written.
	ErrBulkInsert = errors.New("bulk upload failed")
)

type importer struct {
	layout bulk.Layout
	insert func(ctx context.Context, rows [][]string) ([]int, error)
}

// ImportService runs the bulk pipeline: parse, validate per layout, convert
// and insert all accepted rows in one transaction.
type ImportService struct {
	importers map[string]importer
	activity  activity
}

func NewImportService(places PlaceRepository, venues VenueRepository, performances PerformanceRepository, experiences ExperienceRepository, publisher ActivityPublisher) *ImportService {
	s := &ImportService{importers: make(map[string]importer), activity: newActivity(publisher)}

	for _, kind := range domain.PlaceKinds {
		s.importers[string(kind)] = importer{
			layout: bulk.PlaceLayout(kind),
			insert: func(ctx context.Context, rows [][]string) ([]int, error) {
				return places.BulkInsertPlaces(ctx, kind, placesFromRows(rows))
			},
		}
	}
	s.importers[venueEntity] = importer{
		layout: bulk.VenueLayout(),
		insert: func(ctx context.Context, rows [][]string) ([]int, error) {
			return venues.BulkInsertVenues(ctx, venuesFromRows(rows))
		},
	}
	s.importers[performanceEntity] = importer{
		layout: bulk.PerformanceLayout(),
		insert: func(ctx context.Context, rows [][]string) ([]int, error) {
			return performances.BulkInsertPerformances(ctx, performancesFromRows(rows))
		},
	}
	s.importers[experienceEntity] = importer{
		layout: bulk.ExperienceLayout(),
		insert: func(ctx context.Context, rows [][]string) ([]int, error) {
			return experiences.BulkInsertExperiences(ctx, experiencesFromRows(rows))
		},
	}

	return s
}

// Entities lists the entity names that accept bulk imports.
func (s *ImportService) Entities() []string {
	names := make([]string, 0, len(s.importers))
	for name := range s.importers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *ImportService) ImportCSV(ctx context.Context, entity string, r io.Reader) (*bulk.Report, error) {
	imp, err := s.importer(entity)
	if err != nil {
		return nil, err
	}
	rows, err := bulk.ReadCSV(r)
	if err != nil {
		return nil, domain.Invalid("%v", err)
	}
	return s.run(ctx, imp, rows)
}

func (s *ImportService) ImportJSON(ctx context.Context, entity string, data []byte) (*bulk.Report, error) {
	imp, err := s.importer(entity)
	if err != nil {
		return nil, err
	}
	rows, err := imp.layout.RowsFromJSON(data)
	if err != nil {
		return nil, domain.Invalid("%v", err)
	}
	return s.run(ctx, imp, rows)
}

func (s *ImportService) importer(entity string) (importer, error) {
	imp, ok := s.importers[entity]
	if !ok {
		return importer{}, domain.Invalid("bulk import is not supported for %q (supported: %s)",
			entity, strings.Join(s.Entities(), ", "))
	}
	return imp, nil
}

func (s *ImportService) run(ctx context.Context, imp importer, rows [][]string) (*bulk.Report, error) {
	entity := imp.layout.Entity
	accepted, rejected := imp.layout.Validate(rows)
	report := bulk.NewReport(entity, rejected)

	for _, r := range rejected {
		slog.WarnContext(ctx, "bulk row rejected",
			slog.String("entity", entity),
			slog.Int("row", r.Row),
			slog.String("reason", r.Reason))
	}
	bulkRows.WithLabelValues(entity, "rejected").Add(float64(len(rejected)))

	if len(accepted) == 0 {
		return report, ErrNoValidRows
	}

	ids, err := imp.insert(ctx, accepted)
	if err != nil {
		bulkRows.WithLabelValues(entity, "failed").Add(float64(len(accepted)))
		return report, fmt.Errorf("%w: %s: %w", ErrBulkInsert, entity, err)
	}

	report.Inserted = len(ids)
	report.InsertedIDs = ids
	bulkRows.WithLabelValues(entity, "inserted").Add(float64(len(ids)))

	slog.InfoContext(ctx, "bulk import committed",
		slog.String("entity", entity),
		slog.Int("inserted", len(ids)),
		slog.Int("rejected", len(rejected)))
	s.activity.record(ctx, domain.ActivityBulkImported, entity, 0, len(ids))

	return report, nil
}

func placesFromRows(rows [][]string) []domain.Place {
	places := make([]domain.Place, len(rows))
	for i, row := range rows {
		places[i] = domain.Place{
			Name: row[0],
			Lat:  domain.ParseLatitude(row[1]),
			Long: domain.ParseLongitude(row[2]),
		}
		if len(row) > 3 {
			places[i].Remarks = row[3]
		}
	}
	return places
}

func venuesFromRows(rows [][]string) []domain.Venue {
	venues := make([]domain.Venue, len(rows))
	for i, row := range rows {
		venues[i] = domain.Venue{Name: row[0], GPS: row[1] + "," + row[2]}
	}
	return venues
}

func performancesFromRows(rows [][]string) []domain.Performance {
	performances := make([]domain.Performance, len(rows))
	for i, row := range rows {
		performances[i] = domain.Performance{
			Artist:      row[0],
			Description: row[1],
			Venue:       row[5],
			DateTimes:   []domain.DateTimeSlot{{Date: row[2], StartTime: row[3], EndTime: row[4]}},
		}
	}
	return performances
}

func experiencesFromRows(rows [][]string) []domain.Experience {
	experiences := make([]domain.Experience, len(rows))
	for i, row := range rows {
		experiences[i] = domain.Experience{
			Title:       row[0],
			Description: row[1],
			Date:        row[2],
			StartTime:   row[3],
			EndTime:     row[4],
			Venue:       row[5],
		}
	}
	return experiences
}
