package service

import (
	"context"
	"fmt"
	"strings"

	"event-console/console-svc/internal/domain"
)

type PlaceService struct {
	repo     PlaceRepository
	activity activity
}

func NewPlaceService(repo PlaceRepository, publisher ActivityPublisher) *PlaceService {
	return &PlaceService{repo: repo, activity: newActivity(publisher)}
}

func (s *PlaceService) List(ctx context.Context, kind domain.PlaceKind) ([]domain.Place, error) {
	if !kind.Valid() {
		return nil, domain.Invalid("unknown place kind %q", kind)
	}
	return s.repo.ListPlaces(ctx, kind)
}

func (s *PlaceService) Create(ctx context.Context, kind domain.PlaceKind, in domain.PlaceInput) (*domain.Place, error) {
	place, err := s.prepare(kind, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreatePlace(ctx, kind, &place); err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	s.activity.record(ctx, domain.ActivityCreated, string(kind), place.ID, 1)
	return &place, nil
}

func (s *PlaceService) Update(ctx context.Context, kind domain.PlaceKind, id int, in domain.PlaceInput) (*domain.Place, error) {
	place, err := s.prepare(kind, in)
	if err != nil {
		return nil, err
	}
	place.ID = id
	if err := s.repo.UpdatePlace(ctx, kind, &place); err != nil {
		return nil, fmt.Errorf("update %s: %w", kind, err)
	}
	s.activity.record(ctx, domain.ActivityUpdated, string(kind), place.ID, 1)
	return &place, nil
}

func (s *PlaceService) Delete(ctx context.Context, kind domain.PlaceKind, id int) error {
	if !kind.Valid() {
		return domain.Invalid("unknown place kind %q", kind)
	}
	rows, err := s.repo.DeletePlace(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
	}
	s.activity.record(ctx, domain.ActivityDeleted, string(kind), id, 1)
	return nil
}

func (s *PlaceService) prepare(kind domain.PlaceKind, in domain.PlaceInput) (domain.Place, error) {
	if !kind.Valid() {
		return domain.Place{}, domain.Invalid("unknown place kind %q", kind)
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return domain.Place{}, err
	}
	return in.Place()
}
