package mocks

import (
	"context"
	"io"

	"event-console/console-svc/internal/bulk"
	"event-console/console-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type PlaceServiceInterface struct {
	mock.Mock
}

func NewPlaceServiceInterface(t testingT) *PlaceServiceInterface {
	m := &PlaceServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *PlaceServiceInterface) List(ctx context.Context, kind domain.PlaceKind) ([]domain.Place, error) {
	args := m.Called(ctx, kind)
	return value[[]domain.Place](args, 0), args.Error(1)
}

func (m *PlaceServiceInterface) Create(ctx context.Context, kind domain.PlaceKind, in domain.PlaceInput) (*domain.Place, error) {
	args := m.Called(ctx, kind, in)
	return value[*domain.Place](args, 0), args.Error(1)
}

func (m *PlaceServiceInterface) Update(ctx context.Context, kind domain.PlaceKind, id int, in domain.PlaceInput) (*domain.Place, error) {
	args := m.Called(ctx, kind, id, in)
	return value[*domain.Place](args, 0), args.Error(1)
}

func (m *PlaceServiceInterface) Delete(ctx context.Context, kind domain.PlaceKind, id int) error {
	return m.Called(ctx, kind, id).Error(0)
}

type VenueServiceInterface struct {
	mock.Mock
}

func NewVenueServiceInterface(t testingT) *VenueServiceInterface {
	m := &VenueServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *VenueServiceInterface) List(ctx context.Context) ([]domain.Venue, error) {
	args := m.Called(ctx)
	return value[[]domain.Venue](args, 0), args.Error(1)
}

func (m *VenueServiceInterface) Create(ctx context.Context, v *domain.Venue) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VenueServiceInterface) Update(ctx context.Context, v *domain.Venue) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VenueServiceInterface) ToggleSelected(ctx context.Context, id int) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	return value[*domain.Venue](args, 0), args.Error(1)
}

func (m *VenueServiceInterface) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *VenueServiceInterface) QRCode(ctx context.Context, id int) ([]byte, error) {
	args := m.Called(ctx, id)
	return value[[]byte](args, 0), args.Error(1)
}

type PerformanceServiceInterface struct {
	mock.Mock
}

func NewPerformanceServiceInterface(t testingT) *PerformanceServiceInterface {
	m := &PerformanceServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *PerformanceServiceInterface) List(ctx context.Context) ([]domain.Performance, error) {
	args := m.Called(ctx)
	return value[[]domain.Performance](args, 0), args.Error(1)
}

func (m *PerformanceServiceInterface) Get(ctx context.Context, id int) (*domain.Performance, error) {
	args := m.Called(ctx, id)
	return value[*domain.Performance](args, 0), args.Error(1)
}

func (m *PerformanceServiceInterface) Create(ctx context.Context, p *domain.Performance, photo *domain.Upload) error {
	return m.Called(ctx, p, photo).Error(0)
}

func (m *PerformanceServiceInterface) Update(ctx context.Context, p *domain.Performance, photo *domain.Upload) error {
	return m.Called(ctx, p, photo).Error(0)
}

func (m *PerformanceServiceInterface) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type ExperienceServiceInterface struct {
	mock.Mock
}

func NewExperienceServiceInterface(t testingT) *ExperienceServiceInterface {
	m := &ExperienceServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *ExperienceServiceInterface) List(ctx context.Context) ([]domain.Experience, error) {
	args := m.Called(ctx)
	return value[[]domain.Experience](args, 0), args.Error(1)
}

func (m *ExperienceServiceInterface) Get(ctx context.Context, id int) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	return value[*domain.Experience](args, 0), args.Error(1)
}

func (m *ExperienceServiceInterface) Create(ctx context.Context, e *domain.Experience, photo *domain.Upload) error {
	return m.Called(ctx, e, photo).Error(0)
}

func (m *ExperienceServiceInterface) Update(ctx context.Context, e *domain.Experience, photo *domain.Upload) error {
	return m.Called(ctx, e, photo).Error(0)
}

func (m *ExperienceServiceInterface) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type MenuServiceInterface struct {
	mock.Mock
}

func NewMenuServiceInterface(t testingT) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *MenuServiceInterface) List(ctx context.Context) ([]domain.MenuItem, error) {
	args := m.Called(ctx)
	return value[[]domain.MenuItem](args, 0), args.Error(1)
}

func (m *MenuServiceInterface) Create(ctx context.Context, item *domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuServiceInterface) Rename(ctx context.Context, item *domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuServiceInterface) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MenuServiceInterface) Reorder(ctx context.Context, positions []domain.MenuPosition) error {
	return m.Called(ctx, positions).Error(0)
}

type AuthServiceInterface struct {
	mock.Mock
}

func NewAuthServiceInterface(t testingT) *AuthServiceInterface {
	m := &AuthServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *AuthServiceInterface) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	return value[*domain.Session](args, 0), args.Error(1)
}

func (m *AuthServiceInterface) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type ImportServiceInterface struct {
	mock.Mock
}

func NewImportServiceInterface(t testingT) *ImportServiceInterface {
	m := &ImportServiceInterface{}
	register(t, &m.Mock)
	return m
}

// ImportCSV reads r fully before recording the call so expectations can
// match on the uploaded text.
func (m *ImportServiceInterface) ImportCSV(ctx context.Context, entity string, r io.Reader) (*bulk.Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	args := m.Called(ctx, entity, string(data))
	return value[*bulk.Report](args, 0), args.Error(1)
}

func (m *ImportServiceInterface) ImportJSON(ctx context.Context, entity string, data []byte) (*bulk.Report, error) {
	args := m.Called(ctx, entity, string(data))
	return value[*bulk.Report](args, 0), args.Error(1)
}
