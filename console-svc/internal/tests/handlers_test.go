package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	httpapi "event-console/console-svc/internal/api/http"
	"event-console/console-svc/internal/bulk"
	"event-console/console-svc/internal/domain"
	"event-console/console-svc/internal/mocks"
	"event-console/console-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validToken = "valid-token"

type testServer struct {
	router       http.Handler
	places       *mocks.PlaceServiceInterface
	venues       *mocks.VenueServiceInterface
	performances *mocks.PerformanceServiceInterface
	experiences  *mocks.ExperienceServiceInterface
	menu         *mocks.MenuServiceInterface
	auth         *mocks.AuthServiceInterface
	imports      *mocks.ImportServiceInterface
	uploadDir    string
}

func newTestServer(t *testing.T, opts httpapi.Options) *testServer {
	s := &testServer{
		places:       mocks.NewPlaceServiceInterface(t),
		venues:       mocks.NewVenueServiceInterface(t),
		performances: mocks.NewPerformanceServiceInterface(t),
		experiences:  mocks.NewExperienceServiceInterface(t),
		menu:         mocks.NewMenuServiceInterface(t),
		auth:         mocks.NewAuthServiceInterface(t),
		imports:      mocks.NewImportServiceInterface(t),
	}
	if opts.UploadDir == "" {
		opts.UploadDir = t.TempDir()
	}
	s.uploadDir = opts.UploadDir

	s.auth.On("Verify", validToken).Return("admin", nil).Maybe()

	handler := httpapi.NewHandler(httpapi.Services{
		Places:       s.places,
		Venues:       s.venues,
		Performances: s.performances,
		Experiences:  s.experiences,
		Menu:         s.menu,
		Auth:         s.auth,
		Imports:      s.imports,
	}, opts)
	s.router = httpapi.NewRouter(handler)
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestRequireSession(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})
	s.auth.On("Verify", "expired").Return("", domain.ErrUnauthorized).Once()
	s.places.On("List", mock.Anything, domain.FoodPlaces).Return([]domain.Place{}, nil).Once()

	tests := []struct {
		name     string
		auth     string
		path     string
		wantCode int
	}{
		{name: "missing token", auth: "Basic abc", path: "/foodplaces", wantCode: http.StatusUnauthorized},
		{name: "rejected token", auth: "Bearer expired", path: "/foodplaces", wantCode: http.StatusUnauthorized},
		{name: "valid token", auth: "Bearer " + validToken, path: "/foodplaces", wantCode: http.StatusOK},
		{name: "health is public", auth: "Basic abc", path: "/health", wantCode: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, testCase.path, nil)
			req.Header.Set("Authorization", testCase.auth)

			w := s.do(req)

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestAuthDisabledSkipsSession(t *testing.T) {
	s := newTestServer(t, httpapi.Options{AuthDisabled: true})
	s.menu.On("List", mock.Anything).Return([]domain.MenuItem{{ID: 1, Name: "Food", Position: 1}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	w := s.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"menu_id":1,"name":"Food","position":1}]`, w.Body.String())
}

func TestLoginHandler(t *testing.T) {
	s := newTestServer(t, httpapi.Options{LoginRate: 0.001, LoginBurst: 2})
	s.auth.On("Login", mock.Anything, "admin", "pw").
		Return(&domain.Session{Token: "tok", Username: "admin"}, nil).Once()
	s.auth.On("Login", mock.Anything, "admin", "bad").
		Return(nil, fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)).Once()

	w := s.do(jsonRequest(http.MethodPost, "/login", `{"username":" admin ","password":"pw"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok"`)

	w = s.do(jsonRequest(http.MethodPost, "/login", `{"username":"admin","password":"bad"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(jsonRequest(http.MethodPost, "/login", `{"username":"admin","password":"pw"}`))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many login attempts", decodeMessage(t, w))
}

func TestPlaceHandlers(t *testing.T) {
	lat, long := 1.3, 103.8
	created := &domain.Place{ID: 3, Name: "Taco Stand", Lat: &lat, Long: &long}

	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		setupMock   func(*mocks.PlaceServiceInterface)
		wantCode    int
		wantBody    string
		wantMessage string
	}{
		{
			name:   "create",
			method: http.MethodPost,
			target: "/foodplaces",
			body:   `{"name":"Taco Stand","gps":[1.3,103.8]}`,
			setupMock: func(m *mocks.PlaceServiceInterface) {
				m.On("Create", mock.Anything, domain.FoodPlaces,
					domain.PlaceInput{Name: "Taco Stand", GPS: []float64{1.3, 103.8}}).Return(created, nil).Once()
			},
			wantCode: http.StatusCreated,
			wantBody: `{"id":3,"name":"Taco Stand","gps_lat":1.3,"gps_long":103.8,"remarks":""}`,
		},
		{
			name:   "create validation error",
			method: http.MethodPost,
			target: "/toilets",
			body:   `{"gps":[1,2]}`,
			setupMock: func(m *mocks.PlaceServiceInterface) {
				m.On("Create", mock.Anything, domain.Toilets, mock.Anything).
					Return(nil, domain.Invalid("name is required")).Once()
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "name is required",
		},
		{
			name:        "invalid JSON",
			method:      http.MethodPost,
			target:      "/parking",
			body:        `{invalid}`,
			setupMock:   func(m *mocks.PlaceServiceInterface) {},
			wantCode:    http.StatusBadRequest,
			wantMessage: "",
		},
		{
			name:   "update missing row",
			method: http.MethodPut,
			target: "/parking/42",
			body:   `{"name":"Lot","gps":[1,2]}`,
			setupMock: func(m *mocks.PlaceServiceInterface) {
				m.On("Update", mock.Anything, domain.Parking, 42, mock.Anything).
					Return(nil, fmt.Errorf("update parking: %w", domain.ErrNotFound)).Once()
			},
			wantCode:    http.StatusNotFound,
			wantMessage: "Not found",
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			target: "/toilets/5",
			setupMock: func(m *mocks.PlaceServiceInterface) {
				m.On("Delete", mock.Anything, domain.Toilets, 5).Return(nil).Once()
			},
			wantCode: http.StatusNoContent,
		},
		{
			name:   "delete missing row",
			method: http.MethodDelete,
			target: "/toilets/6",
			setupMock: func(m *mocks.PlaceServiceInterface) {
				m.On("Delete", mock.Anything, domain.Toilets, 6).Return(domain.ErrNotFound).Once()
			},
			wantCode:    http.StatusNotFound,
			wantMessage: "Not found",
		},
		{
			name:   "database error",
			method: http.MethodGet,
			target: "/foodplaces",
			setupMock: func(m *mocks.PlaceServiceInterface) {
				m.On("List", mock.Anything, domain.FoodPlaces).Return(nil, assert.AnError).Once()
			},
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Server Error",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestServer(t, httpapi.Options{})
			testCase.setupMock(s.places)

			w := s.do(jsonRequest(testCase.method, testCase.target, testCase.body))

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantBody != "" {
				assert.JSONEq(t, testCase.wantBody, w.Body.String())
			}
			if testCase.wantMessage != "" {
				assert.Equal(t, testCase.wantMessage, decodeMessage(t, w))
			}
		})
	}
}

func TestVenueHandlers(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})

	s.venues.On("ToggleSelected", mock.Anything, 2).
		Return(&domain.Venue{ID: 2, Name: "Main", Selected: true}, nil).Once()
	s.venues.On("QRCode", mock.Anything, 2).Return([]byte("\x89PNG"), nil).Once()
	s.venues.On("Update", mock.Anything, &domain.Venue{ID: 2, Name: "Main", GPS: "1,2"}).Return(nil).Once()

	w := s.do(httptest.NewRequest(http.MethodPut, "/venues/2/select", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"selected":true`)

	w = s.do(httptest.NewRequest(http.MethodGet, "/venues/2/qrcode", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", w.Body.String())

	w = s.do(jsonRequest(http.MethodPut, "/venues/2", `{"id":99,"name":"Main","gps":"1,2"}`))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMenuReorderHandler(t *testing.T) {
	order := []domain.MenuPosition{{ID: 2, Position: 1}, {ID: 1, Position: 2}}

	tests := []struct {
		name string
		body string
	}{
		{name: "bare array", body: `[{"id":2,"position":1},{"id":1,"position":2}]`},
		{name: "wrapped", body: `{"items":[{"id":2,"position":1},{"id":1,"position":2}]}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestServer(t, httpapi.Options{})
			s.menu.On("Reorder", mock.Anything, order).Return(nil).Once()
			s.menu.On("List", mock.Anything).Return([]domain.MenuItem{
				{ID: 2, Name: "Venues", Position: 1},
				{ID: 1, Name: "Food", Position: 2},
			}, nil).Once()

			w := s.do(jsonRequest(http.MethodPost, "/menu/update", testCase.body))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"name":"Venues","position":1`)
		})
	}
}

func TestMenuReorderRejectsBadOrder(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})
	s.menu.On("Reorder", mock.Anything, mock.Anything).
		Return(domain.Invalid("position 3 out of range 1..2")).Once()

	w := s.do(jsonRequest(http.MethodPost, "/menu/update", `[{"id":1,"position":1},{"id":2,"position":3}]`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "position 3 out of range 1..2", decodeMessage(t, w))
}

func TestBulkImportHandler(t *testing.T) {
	report := &bulk.Report{Entity: "performances", Inserted: 5, InsertedIDs: []int{1, 2, 3, 4, 5}, Rejected: []bulk.Rejection{}}
	empty := &bulk.Report{Entity: "performances", InsertedIDs: []int{}, Rejected: []bulk.Rejection{{Row: 1, Reason: "expected 6 columns, got 2"}}}

	tests := []struct {
		name        string
		contentType string
		body        string
		setupMock   func(*mocks.ImportServiceInterface)
		wantCode    int
		wantBody    string
	}{
		{
			name:        "csv body",
			contentType: "text/csv",
			body:        "a,b,c\n",
			setupMock: func(m *mocks.ImportServiceInterface) {
				m.On("ImportCSV", mock.Anything, "performances", "a,b,c\n").Return(report, nil).Once()
			},
			wantCode: http.StatusCreated,
			wantBody: `{"entity":"performances","inserted":5,"insertedIds":[1,2,3,4,5],"rejected":[]}`,
		},
		{
			name:        "json body",
			contentType: "application/json; charset=utf-8",
			body:        `[{"artist":"A"}]`,
			setupMock: func(m *mocks.ImportServiceInterface) {
				m.On("ImportJSON", mock.Anything, "performances", `[{"artist":"A"}]`).Return(report, nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:        "no valid rows",
			contentType: "text/csv",
			body:        "x,y\n",
			setupMock: func(m *mocks.ImportServiceInterface) {
				m.On("ImportCSV", mock.Anything, "performances", "x,y\n").Return(empty, service.ErrNoValidRows).Once()
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"entity":"performances","inserted":0,"insertedIds":[],"rejected":[{"row":1,"reason":"expected 6 columns, got 2"}]}`,
		},
		{
			name:        "insert failure",
			contentType: "text/csv",
			body:        "a,b,c,d,e,f\n",
			setupMock: func(m *mocks.ImportServiceInterface) {
				m.On("ImportCSV", mock.Anything, "performances", mock.Anything).
					Return(report, fmt.Errorf("%w: performances: %w", service.ErrBulkInsert, assert.AnError)).Once()
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"message":"Bulk upload failed"}`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestServer(t, httpapi.Options{})
			testCase.setupMock(s.imports)

			req := httptest.NewRequest(http.MethodPost, "/performances/bulk", strings.NewReader(testCase.body))
			req.Header.Set("Content-Type", testCase.contentType)
			w := s.do(req)

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantBody != "" {
				assert.JSONEq(t, testCase.wantBody, w.Body.String())
			}
		})
	}
}

func TestBulkImportHandler_MultipartRemovesTempFile(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})
	csv := "Main Stage,1.3,103.8\n"
	s.imports.On("ImportCSV", mock.Anything, "venues", csv).
		Return(&bulk.Report{Entity: "venues", Inserted: 1, InsertedIDs: []int{1}, Rejected: []bulk.Rejection{}}, nil).Once()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "venues.csv")
	require.NoError(t, err)
	_, _ = part.Write([]byte(csv))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/venues/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req)

	assert.Equal(t, http.StatusCreated, w.Code)
	leftovers, err := os.ReadDir(filepath.Join(s.uploadDir, "tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestBulkImportHandler_MultipartWithoutFile(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/foodplaces/bulk", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePerformanceHandler_Multipart(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})
	s.performances.On("Create", mock.Anything,
		mock.MatchedBy(func(p *domain.Performance) bool {
			return p.Artist == "Band" && p.Venue == "Main" && len(p.DateTimes) == 2 && p.DateTimes[1].Date == "2025-07-02"
		}),
		mock.MatchedBy(func(u *domain.Upload) bool {
			return u != nil && u.Filename == "band.png" && u.ContentType == "image/png"
		}),
	).Run(func(args mock.Arguments) {
		p := args.Get(1).(*domain.Performance)
		p.ID = 12
		p.Photo = "/uploads/abc-band.png"
	}).Return(nil).Once()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("artist", "Band"))
	require.NoError(t, mw.WriteField("venue", "Main"))
	require.NoError(t, mw.WriteField("dateTimes",
		`[{"date":"2025-07-01","startTime":"18:00","endTime":"19:00"},{"date":"2025-07-02","startTime":"18:00","endTime":"19:00"}]`))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="band.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/performances", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"performance_id":12`)
	assert.Contains(t, w.Body.String(), `"photo":"/uploads/abc-band.png"`)
}

func photoRequest(t *testing.T, target string, photo []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("artist", "Band"))
	require.NoError(t, mw.WriteField("venue", "Main"))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="band.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(photo)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreatePerformanceHandler_PhotoSizeLimit(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		wantCode    int
		wantMessage string
	}{
		{name: "at limit", size: 10 << 20, wantCode: http.StatusCreated},
		{name: "over limit", size: 11 << 20, wantCode: http.StatusBadRequest, wantMessage: "photo exceeds 10 MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, httpapi.Options{})
			if tt.wantCode == http.StatusCreated {
				s.performances.On("Create", mock.Anything, mock.Anything,
					mock.MatchedBy(func(u *domain.Upload) bool { return u != nil && u.Filename == "band.png" }),
				).Return(nil).Once()
			}

			w := s.do(photoRequest(t, "/performances", bytes.Repeat([]byte{0x42}, tt.size)))

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, w))
			}
		})
	}
}

func TestBulkImportHandler_OversizedUpload(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "toilets.csv")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("Toilet,1.3,103.8\n"), (33<<20)/17))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/toilets/bulk", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "upload exceeds 33554432 bytes", decodeMessage(t, w))
}

func TestServerErrorLogsAdmin(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	s := newTestServer(t, httpapi.Options{})
	s.places.On("List", mock.Anything, domain.Parking).Return(nil, errors.New("connection reset")).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/parking", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logs.String(), `"msg":"request failed"`)
	assert.Contains(t, logs.String(), `"admin":"admin"`)
}

func TestUpdateExperienceHandler_JSON(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})
	s.experiences.On("Update", mock.Anything,
		mock.MatchedBy(func(e *domain.Experience) bool { return e.ID == 4 && e.Title == "Yoga" }),
		(*domain.Upload)(nil),
	).Return(nil).Once()
	s.experiences.On("Get", mock.Anything, 8).Return(nil, domain.ErrNotFound).Once()

	w := s.do(jsonRequest(http.MethodPut, "/experiences/4",
		`{"title":"Yoga","date":"2025-07-01","startTime":"08:00","endTime":"09:00","venue":"Lawn"}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/experiences/8", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPhotoFiles(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})
	require.NoError(t, os.WriteFile(filepath.Join(s.uploadDir, "a.png"), []byte("img"), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "img", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/uploads/tmp/x.csv", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, httpapi.Options{})

	w := s.do(httptest.NewRequest(http.MethodGet, "/tickets", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decodeMessage(t, w))
}
