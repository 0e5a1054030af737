package service

import (
	"context"
	"fmt"
	"strings"

	"event-console/console-svc/internal/domain"
)

const menuEntity = "menu"

type MenuService struct {
	repo     MenuRepository
	activity activity
}

func NewMenuService(repo MenuRepository, publisher ActivityPublisher) *MenuService {
	return &MenuService{repo: repo, activity: newActivity(publisher)}
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListMenu(ctx)
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if err := validateStruct(item); err != nil {
		return err
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	s.activity.record(ctx, domain.ActivityCreated, menuEntity, item.ID, 1)
	return nil
}

func (s *MenuService) Rename(ctx context.Context, item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if err := validateStruct(item); err != nil {
		return err
	}
	if err := s.repo.RenameMenuItem(ctx, item); err != nil {
		return fmt.Errorf("rename menu item: %w", err)
	}
	s.activity.record(ctx, domain.ActivityUpdated, menuEntity, item.ID, 1)
	return nil
}

func (s *MenuService) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	s.activity.record(ctx, domain.ActivityDeleted, menuEntity, id, 1)
	return nil
}

// Reorder applies a full new ordering. positions must name each item once and
// use every position from 1 to len(positions) exactly once.
func (s *MenuService) Reorder(ctx context.Context, positions []domain.MenuPosition) error {
	if len(positions) == 0 {
		return domain.Invalid("reorder needs at least one position")
	}

	seenIDs := make(map[int]bool, len(positions))
	seenPositions := make([]bool, len(positions)+1)
	for _, p := range positions {
		if err := validateStruct(p); err != nil {
			return err
		}
		if seenIDs[p.ID] {
			return domain.Invalid("menu item %d listed twice", p.ID)
		}
		seenIDs[p.ID] = true

		if p.Position > len(positions) {
			return domain.Invalid("position %d out of range 1..%d", p.Position, len(positions))
		}
		if seenPositions[p.Position] {
			return domain.Invalid("position %d used twice", p.Position)
		}
		seenPositions[p.Position] = true
	}

	if err := s.repo.ReorderMenu(ctx, positions); err != nil {
		return fmt.Errorf("reorder menu: %w", err)
	}
	s.activity.record(ctx, domain.ActivityReordered, menuEntity, 0, len(positions))
	return nil
}
