package mocks

import (
	"context"

	"event-console/console-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type PlaceRepository struct {
	mock.Mock
}

func NewPlaceRepository(t testingT) *PlaceRepository {
	m := &PlaceRepository{}
	register(t, &m.Mock)
	return m
}

func (m *PlaceRepository) ListPlaces(ctx context.Context, kind domain.PlaceKind) ([]domain.Place, error) {
	args := m.Called(ctx, kind)
	return value[[]domain.Place](args, 0), args.Error(1)
}

func (m *PlaceRepository) CreatePlace(ctx context.Context, kind domain.PlaceKind, p *domain.Place) error {
	return m.Called(ctx, kind, p).Error(0)
}

func (m *PlaceRepository) UpdatePlace(ctx context.Context, kind domain.PlaceKind, p *domain.Place) error {
	return m.Called(ctx, kind, p).Error(0)
}

func (m *PlaceRepository) DeletePlace(ctx context.Context, kind domain.PlaceKind, id int) (int64, error) {
	args := m.Called(ctx, kind, id)
	return value[int64](args, 0), args.Error(1)
}

func (m *PlaceRepository) BulkInsertPlaces(ctx context.Context, kind domain.PlaceKind, places []domain.Place) ([]int, error) {
	args := m.Called(ctx, kind, places)
	return value[[]int](args, 0), args.Error(1)
}

type VenueRepository struct {
	mock.Mock
}

func NewVenueRepository(t testingT) *VenueRepository {
	m := &VenueRepository{}
	register(t, &m.Mock)
	return m
}

func (m *VenueRepository) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	args := m.Called(ctx)
	return value[[]domain.Venue](args, 0), args.Error(1)
}

func (m *VenueRepository) GetVenue(ctx context.Context, id int) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	return value[*domain.Venue](args, 0), args.Error(1)
}

func (m *VenueRepository) CreateVenue(ctx context.Context, v *domain.Venue) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VenueRepository) UpdateVenue(ctx context.Context, v *domain.Venue) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VenueRepository) ToggleVenueSelected(ctx context.Context, id int) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	return value[*domain.Venue](args, 0), args.Error(1)
}

func (m *VenueRepository) DeleteVenue(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return value[int64](args, 0), args.Error(1)
}

func (m *VenueRepository) BulkInsertVenues(ctx context.Context, venues []domain.Venue) ([]int, error) {
	args := m.Called(ctx, venues)
	return value[[]int](args, 0), args.Error(1)
}

type PerformanceRepository struct {
	mock.Mock
}

func NewPerformanceRepository(t testingT) *PerformanceRepository {
	m := &PerformanceRepository{}
	register(t, &m.Mock)
	return m
}

func (m *PerformanceRepository) ListPerformances(ctx context.Context) ([]domain.Performance, error) {
	args := m.Called(ctx)
	return value[[]domain.Performance](args, 0), args.Error(1)
}

func (m *PerformanceRepository) GetPerformance(ctx context.Context, id int) (*domain.Performance, error) {
	args := m.Called(ctx, id)
	return value[*domain.Performance](args, 0), args.Error(1)
}

func (m *PerformanceRepository) CreatePerformance(ctx context.Context, p *domain.Performance) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PerformanceRepository) UpdatePerformance(ctx context.Context, p *domain.Performance) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *PerformanceRepository) DeletePerformance(ctx context.Context, id int) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *PerformanceRepository) BulkInsertPerformances(ctx context.Context, performances []domain.Performance) ([]int, error) {
	args := m.Called(ctx, performances)
	return value[[]int](args, 0), args.Error(1)
}

type ExperienceRepository struct {
	mock.Mock
}

func NewExperienceRepository(t testingT) *ExperienceRepository {
	m := &ExperienceRepository{}
	register(t, &m.Mock)
	return m
}

func (m *ExperienceRepository) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	args := m.Called(ctx)
	return value[[]domain.Experience](args, 0), args.Error(1)
}

func (m *ExperienceRepository) GetExperience(ctx context.Context, id int) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	return value[*domain.Experience](args, 0), args.Error(1)
}

func (m *ExperienceRepository) CreateExperience(ctx context.Context, e *domain.Experience) error {
	return m.Called(ctx, e).Error(0)
}

func (m *ExperienceRepository) UpdateExperience(ctx context.Context, e *domain.Experience) (string, error) {
	args := m.Called(ctx, e)
	return args.String(0), args.Error(1)
}

func (m *ExperienceRepository) DeleteExperience(ctx context.Context, id int) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *ExperienceRepository) BulkInsertExperiences(ctx context.Context, experiences []domain.Experience) ([]int, error) {
	args := m.Called(ctx, experiences)
	return value[[]int](args, 0), args.Error(1)
}

type MenuRepository struct {
	mock.Mock
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	register(t, &m.Mock)
	return m
}

func (m *MenuRepository) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	args := m.Called(ctx)
	return value[[]domain.MenuItem](args, 0), args.Error(1)
}

func (m *MenuRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuRepository) RenameMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuRepository) DeleteMenuItem(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MenuRepository) ReorderMenu(ctx context.Context, positions []domain.MenuPosition) error {
	return m.Called(ctx, positions).Error(0)
}

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(t, &m.Mock)
	return m
}

func (m *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	args := m.Called(ctx, username)
	return value[*domain.AdminUser](args, 0), args.Error(1)
}

func (m *UserRepository) UpsertUser(ctx context.Context, u *domain.AdminUser) error {
	return m.Called(ctx, u).Error(0)
}

type ActivityPublisher struct {
	mock.Mock
}

func NewActivityPublisher(t testingT) *ActivityPublisher {
	m := &ActivityPublisher{}
	register(t, &m.Mock)
	return m
}

func (m *ActivityPublisher) PublishActivity(ctx context.Context, event domain.ActivityEvent) error {
	return m.Called(ctx, event).Error(0)
}

type PhotoStore struct {
	mock.Mock
}

func NewPhotoStore(t testingT) *PhotoStore {
	m := &PhotoStore{}
	register(t, &m.Mock)
	return m
}

func (m *PhotoStore) Save(upload domain.Upload) (string, error) {
	args := m.Called(upload)
	return args.String(0), args.Error(1)
}

func (m *PhotoStore) Remove(publicPath string) error {
	return m.Called(publicPath).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	register(t, &m.Mock)
	return m
}

func (m *QRGenerator) Generate(venue domain.Venue) ([]byte, error) {
	args := m.Called(venue)
	return value[[]byte](args, 0), args.Error(1)
}
