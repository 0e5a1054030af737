package service

import (
	"context"
	"io"

	"event-console/console-svc/internal/bulk"
	"event-console/console-svc/internal/domain"
)

type PlaceRepository interface {
	ListPlaces(ctx context.Context, kind domain.PlaceKind) ([]domain.Place, error)
	CreatePlace(ctx context.Context, kind domain.PlaceKind, p *domain.Place) error
	UpdatePlace(ctx context.Context, kind domain.PlaceKind, p *domain.Place) error
	DeletePlace(ctx context.Context, kind domain.PlaceKind, id int) (int64, error)
	BulkInsertPlaces(ctx context.Context, kind domain.PlaceKind, places []domain.Place) ([]int, error)
}

type VenueRepository interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id int) (*domain.Venue, error)
	CreateVenue(ctx context.Context, v *domain.Venue) error
	UpdateVenue(ctx context.Context, v *domain.Venue) error
	ToggleVenueSelected(ctx context.Context, id int) (*domain.Venue, error)
	DeleteVenue(ctx context.Context, id int) (int64, error)
	BulkInsertVenues(ctx context.Context, venues []domain.Venue) ([]int, error)
}

type PerformanceRepository interface {
	ListPerformances(ctx context.Context) ([]domain.Performance, error)
	GetPerformance(ctx context.Context, id int) (*domain.Performance, error)
	CreatePerformance(ctx context.Context, p *domain.Performance) error
	UpdatePerformance(ctx context.Context, p *domain.Performance) (string, error)
	DeletePerformance(ctx context.Context, id int) (string, error)
	BulkInsertPerformances(ctx context.Context, performances []domain.Performance) ([]int, error)
}

type ExperienceRepository interface {
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	GetExperience(ctx context.Context, id int) (*domain.Experience, error)
	CreateExperience(ctx context.Context, e *domain.Experience) error
	UpdateExperience(ctx context.Context, e *domain.Experience) (string, error)
	DeleteExperience(ctx context.Context, id int) (string, error)
	BulkInsertExperiences(ctx context.Context, experiences []domain.Experience) ([]int, error)
}

type MenuRepository interface {
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	RenameMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) error
	ReorderMenu(ctx context.Context, positions []domain.MenuPosition) error
}

type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	UpsertUser(ctx context.Context, u *domain.AdminUser) error
}

type ActivityPublisher interface {
	PublishActivity(ctx context.Context, event domain.ActivityEvent) error
}

type PhotoStore interface {
	Save(upload domain.Upload) (string, error)
	Remove(publicPath string) error
}

type PlaceServiceInterface interface {
	List(ctx context.Context, kind domain.PlaceKind) ([]domain.Place, error)
	Create(ctx context.Context, kind domain.PlaceKind, in domain.PlaceInput) (*domain.Place, error)
	Update(ctx context.Context, kind domain.PlaceKind, id int, in domain.PlaceInput) (*domain.Place, error)
	Delete(ctx context.Context, kind domain.PlaceKind, id int) error
}

type VenueServiceInterface interface {
	List(ctx context.Context) ([]domain.Venue, error)
	Create(ctx context.Context, v *domain.Venue) error
	Update(ctx context.Context, v *domain.Venue) error
	ToggleSelected(ctx context.Context, id int) (*domain.Venue, error)
	Delete(ctx context.Context, id int) error
	QRCode(ctx context.Context, id int) ([]byte, error)
}

type PerformanceServiceInterface interface {
	List(ctx context.Context) ([]domain.Performance, error)
	Get(ctx context.Context, id int) (*domain.Performance, error)
	Create(ctx context.Context, p *domain.Performance, photo *domain.Upload) error
	Update(ctx context.Context, p *domain.Performance, photo *domain.Upload) error
	Delete(ctx context.Context, id int) error
}

type ExperienceServiceInterface interface {
	List(ctx context.Context) ([]domain.Experience, error)
	Get(ctx context.Context, id int) (*domain.Experience, error)
	Create(ctx context.Context, e *domain.Experience, photo *domain.Upload) error
	Update(ctx context.Context, e *domain.Experience, photo *domain.Upload) error
	Delete(ctx context.Context, id int) error
}

type MenuServiceInterface interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Rename(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int) error
	Reorder(ctx context.Context, positions []domain.MenuPosition) error
}

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Verify(token string) (string, error)
}

type ImportServiceInterface interface {
	ImportCSV(ctx context.Context, entity string, r io.Reader) (*bulk.Report, error)
	ImportJSON(ctx context.Context, entity string, data []byte) (*bulk.Report, error)
}

var (
	_ PlaceServiceInterface       = (*PlaceService)(nil)
	_ VenueServiceInterface       = (*VenueService)(nil)
	_ PerformanceServiceInterface = (*PerformanceService)(nil)
	_ ExperienceServiceInterface  = (*ExperienceService)(nil)
	_ MenuServiceInterface        = (*MenuService)(nil)
	_ AuthServiceInterface        = (*AuthService)(nil)
	_ ImportServiceInterface      = (*ImportService)(nil)
)
