package service

import (
	"context"
	"fmt"
	"strings"

	"event-console/console-svc/internal/domain"
)

const (
	performanceEntity = "performances"
	experienceEntity  = "experiences"
)

type PerformanceService struct {
	repo     PerformanceRepository
	photos   PhotoStore
	activity activity
}

func NewPerformanceService(repo PerformanceRepository, photos PhotoStore, publisher ActivityPublisher) *PerformanceService {
	return &PerformanceService{repo: repo, photos: photos, activity: newActivity(publisher)}
}

func (s *PerformanceService) List(ctx context.Context) ([]domain.Performance, error) {
	return s.repo.ListPerformances(ctx)
}

func (s *PerformanceService) Get(ctx context.Context, id int) (*domain.Performance, error) {
	return s.repo.GetPerformance(ctx, id)
}

func (s *PerformanceService) Create(ctx context.Context, p *domain.Performance, photo *domain.Upload) error {
	if err := preparePerformance(p); err != nil {
		return err
	}
	if err := savePhoto(s.photos, photo, &p.Photo); err != nil {
		return err
	}
	if err := s.repo.CreatePerformance(ctx, p); err != nil {
		removePhoto(ctx, s.photos, p.Photo)
		return fmt.Errorf("create performance: %w", err)
	}
	s.activity.record(ctx, domain.ActivityCreated, performanceEntity, p.ID, 1)
	return nil
}

func (s *PerformanceService) Update(ctx context.Context, p *domain.Performance, photo *domain.Upload) error {
	if err := preparePerformance(p); err != nil {
		return err
	}
	if err := savePhoto(s.photos, photo, &p.Photo); err != nil {
		return err
	}
	replacement := p.Photo

	previous, err := s.repo.UpdatePerformance(ctx, p)
	if err != nil {
		removePhoto(ctx, s.photos, replacement)
		return fmt.Errorf("update performance: %w", err)
	}
	if replacement == "" {
		p.Photo = previous
	} else if previous != replacement {
		removePhoto(ctx, s.photos, previous)
	}
	s.activity.record(ctx, domain.ActivityUpdated, performanceEntity, p.ID, 1)
	return nil
}

func (s *PerformanceService) Delete(ctx context.Context, id int) error {
	photo, err := s.repo.DeletePerformance(ctx, id)
	if err != nil {
		return fmt.Errorf("delete performance: %w", err)
	}
	removePhoto(ctx, s.photos, photo)
	s.activity.record(ctx, domain.ActivityDeleted, performanceEntity, id, 1)
	return nil
}

type ExperienceService struct {
	repo     ExperienceRepository
	photos   PhotoStore
	activity activity
}

func NewExperienceService(repo ExperienceRepository, photos PhotoStore, publisher ActivityPublisher) *ExperienceService {
	return &ExperienceService{repo: repo, photos: photos, activity: newActivity(publisher)}
}

func (s *ExperienceService) List(ctx context.Context) ([]domain.Experience, error) {
	return s.repo.ListExperiences(ctx)
}

func (s *ExperienceService) Get(ctx context.Context, id int) (*domain.Experience, error) {
	return s.repo.GetExperience(ctx, id)
}

func (s *ExperienceService) Create(ctx context.Context, e *domain.Experience, photo *domain.Upload) error {
	if err := prepareExperience(e); err != nil {
		return err
	}
	if err := savePhoto(s.photos, photo, &e.Photo); err != nil {
		return err
	}
	if err := s.repo.CreateExperience(ctx, e); err != nil {
		removePhoto(ctx, s.photos, e.Photo)
		return fmt.Errorf("create experience: %w", err)
	}
	s.activity.record(ctx, domain.ActivityCreated, experienceEntity, e.ID, 1)
	return nil
}

func (s *ExperienceService) Update(ctx context.Context, e *domain.Experience, photo *domain.Upload) error {
	if err := prepareExperience(e); err != nil {
		return err
	}
	if err := savePhoto(s.photos, photo, &e.Photo); err != nil {
		return err
	}
	replacement := e.Photo

	previous, err := s.repo.UpdateExperience(ctx, e)
	if err != nil {
		removePhoto(ctx, s.photos, replacement)
		return fmt.Errorf("update experience: %w", err)
	}
	if replacement == "" {
		e.Photo = previous
	} else if previous != replacement {
		removePhoto(ctx, s.photos, previous)
	}
	s.activity.record(ctx, domain.ActivityUpdated, experienceEntity, e.ID, 1)
	return nil
}

func (s *ExperienceService) Delete(ctx context.Context, id int) error {
	photo, err := s.repo.DeleteExperience(ctx, id)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	removePhoto(ctx, s.photos, photo)
	s.activity.record(ctx, domain.ActivityDeleted, experienceEntity, id, 1)
	return nil
}

func preparePerformance(p *domain.Performance) error {
	p.Artist = strings.TrimSpace(p.Artist)
	p.Description = strings.TrimSpace(p.Description)
	p.Venue = strings.TrimSpace(p.Venue)
	if err := validateStruct(p); err != nil {
		return err
	}
	for i, slot := range p.DateTimes {
		normalized, err := slot.Normalize()
		if err != nil {
			return fmt.Errorf("dateTimes[%d]: %w", i, err)
		}
		p.DateTimes[i] = normalized
	}
	return nil
}

func prepareExperience(e *domain.Experience) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Venue = strings.TrimSpace(e.Venue)
	if err := validateStruct(e); err != nil {
		return err
	}
	slot, err := domain.DateTimeSlot{Date: e.Date, StartTime: e.StartTime, EndTime: e.EndTime}.Normalize()
	if err != nil {
		return err
	}
	e.Date, e.StartTime, e.EndTime = slot.Date, slot.StartTime, slot.EndTime
	return nil
}

// savePhoto stores photo when one was uploaded and sets *path to its public
// path; without an upload *path is cleared so the stored photo is kept.
func savePhoto(photos PhotoStore, photo *domain.Upload, path *string) error {
	*path = ""
	if photo == nil {
		return nil
	}
	if photos == nil {
		return fmt.Errorf("photo uploads are not configured")
	}
	saved, err := photos.Save(*photo)
	if err != nil {
		return fmt.Errorf("save photo: %w", err)
	}
	*path = saved
	return nil
}
