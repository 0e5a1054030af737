package service

import (
	"context"
	"fmt"
	"strings"

	"event-console/console-svc/internal/domain"
)

const venueEntity = "venues"

type VenueService struct {
	repo     VenueRepository
	qr       QRGenerator
	activity activity
}

func NewVenueService(repo VenueRepository, qr QRGenerator, publisher ActivityPublisher) *VenueService {
	return &VenueService{repo: repo, qr: qr, activity: newActivity(publisher)}
}

func (s *VenueService) List(ctx context.Context) ([]domain.Venue, error) {
	return s.repo.ListVenues(ctx)
}

func (s *VenueService) Create(ctx context.Context, v *domain.Venue) error {
	if err := prepareVenue(v); err != nil {
		return err
	}
	if err := s.repo.CreateVenue(ctx, v); err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	s.activity.record(ctx, domain.ActivityCreated, venueEntity, v.ID, 1)
	return nil
}

func (s *VenueService) Update(ctx context.Context, v *domain.Venue) error {
	if err := prepareVenue(v); err != nil {
		return err
	}
	if err := s.repo.UpdateVenue(ctx, v); err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	s.activity.record(ctx, domain.ActivityUpdated, venueEntity, v.ID, 1)
	return nil
}

func (s *VenueService) ToggleSelected(ctx context.Context, id int) (*domain.Venue, error) {
	v, err := s.repo.ToggleVenueSelected(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle venue: %w", err)
	}
	s.activity.record(ctx, domain.ActivitySelected, venueEntity, id, 1)
	return v, nil
}

func (s *VenueService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteVenue(ctx, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("venue %d: %w", id, domain.ErrNotFound)
	}
	s.activity.record(ctx, domain.ActivityDeleted, venueEntity, id, 1)
	return nil
}

func (s *VenueService) QRCode(ctx context.Context, id int) ([]byte, error) {
	v, err := s.repo.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(*v)
	if err != nil {
		return nil, fmt.Errorf("generate venue qr code: %w", err)
	}
	return png, nil
}

func prepareVenue(v *domain.Venue) error {
	v.Name = strings.TrimSpace(v.Name)
	v.GPS = strings.TrimSpace(v.GPS)
	return validateStruct(v)
}
