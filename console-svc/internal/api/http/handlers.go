package httpapi

import (
	"net/http"
	"strings"
	"time"

	"event-console/console-svc/internal/domain"
	"event-console/console-svc/internal/service"
	"event-console/observability"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

type Handler struct {
	Places       service.PlaceServiceInterface
	Venues       service.VenueServiceInterface
	Performances service.PerformanceServiceInterface
	Experiences  service.ExperienceServiceInterface
	Menu         service.MenuServiceInterface
	Auth         service.AuthServiceInterface
	Imports      service.ImportServiceInterface

	// UploadDir holds stored photos and, under tmp/, spooled bulk files.
	UploadDir    string
	AuthDisabled bool
	LoginLimiter *rate.Limiter
}

// Services groups the business services the handler delegates to.
type Services struct {
	Places       service.PlaceServiceInterface
	Venues       service.VenueServiceInterface
	Performances service.PerformanceServiceInterface
	Experiences  service.ExperienceServiceInterface
	Menu         service.MenuServiceInterface
	Auth         service.AuthServiceInterface
	Imports      service.ImportServiceInterface
}

type Options struct {
	UploadDir    string
	AuthDisabled bool
	LoginRate    float64
	LoginBurst   int
}

func NewHandler(svc Services, opts Options) *Handler {
	h := &Handler{
		Places:       svc.Places,
		Venues:       svc.Venues,
		Performances: svc.Performances,
		Experiences:  svc.Experiences,
		Menu:         svc.Menu,
		Auth:         svc.Auth,
		Imports:      svc.Imports,
		UploadDir:    opts.UploadDir,
		AuthDisabled: opts.AuthDisabled,
	}
	if opts.LoginRate > 0 {
		h.LoginLimiter = rate.NewLimiter(rate.Limit(opts.LoginRate), max(opts.LoginBurst, 1))
	}
	return h
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", observability.MetricsHandler()).Methods("GET")
	r.HandleFunc("/login", h.login).Methods("POST")
	if h.UploadDir != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", photoFiles(h.UploadDir))).Methods("GET", "HEAD")
	}

	api := r.NewRoute().Subrouter()
	api.Use(h.requireSession)

	for _, kind := range domain.PlaceKinds {
		base := "/" + string(kind)
		api.HandleFunc(base, h.listPlaces(kind)).Methods("GET")
		api.HandleFunc(base, h.createPlace(kind)).Methods("POST")
		api.HandleFunc(base+"/bulk", h.bulkImport(string(kind))).Methods("POST")
		api.HandleFunc(base+"/{id:[0-9]+}", h.updatePlace(kind)).Methods("PUT")
		api.HandleFunc(base+"/{id:[0-9]+}", h.deletePlace(kind)).Methods("DELETE")
	}

	api.HandleFunc("/venues", h.listVenues).Methods("GET")
	api.HandleFunc("/venues", h.createVenue).Methods("POST")
	api.HandleFunc("/venues/bulk", h.bulkImport("venues")).Methods("POST")
	api.HandleFunc("/venues/upload", h.bulkImport("venues")).Methods("POST")
	api.HandleFunc("/venues/{id:[0-9]+}", h.updateVenue).Methods("PUT")
	api.HandleFunc("/venues/{id:[0-9]+}", h.deleteVenue).Methods("DELETE")
	api.HandleFunc("/venues/{id:[0-9]+}/select", h.toggleVenue).Methods("PUT")
	api.HandleFunc("/venues/{id:[0-9]+}/qrcode", h.venueQRCode).Methods("GET")

	api.HandleFunc("/performances", h.listPerformances).Methods("GET")
	api.HandleFunc("/performances", h.createPerformance).Methods("POST")
	api.HandleFunc("/performances/bulk", h.bulkImport("performances")).Methods("POST")
	api.HandleFunc("/performances/{id:[0-9]+}", h.getPerformance).Methods("GET")
	api.HandleFunc("/performances/{id:[0-9]+}", h.updatePerformance).Methods("PUT")
	api.HandleFunc("/performances/{id:[0-9]+}", h.deletePerformance).Methods("DELETE")

	api.HandleFunc("/experiences", h.listExperiences).Methods("GET")
	api.HandleFunc("/experiences", h.createExperience).Methods("POST")
	api.HandleFunc("/experiences/bulk", h.bulkImport("experiences")).Methods("POST")
	api.HandleFunc("/experiences/{id:[0-9]+}", h.getExperience).Methods("GET")
	api.HandleFunc("/experiences/{id:[0-9]+}", h.updateExperience).Methods("PUT")
	api.HandleFunc("/experiences/{id:[0-9]+}", h.deleteExperience).Methods("DELETE")

	api.HandleFunc("/menu", h.listMenu).Methods("GET")
	api.HandleFunc("/menu", h.createMenuItem).Methods("POST")
	api.HandleFunc("/menu/update", h.reorderMenu).Methods("POST")
	api.HandleFunc("/menu/{id:[0-9]+}", h.renameMenuItem).Methods("PUT")
	api.HandleFunc("/menu/{id:[0-9]+}", h.deleteMenuItem).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "console-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// photoFiles serves files directly inside dir; nested paths and directory
// listings are not exposed.
func photoFiles(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if name == "" || name == "." || strings.ContainsAny(name, `/\`) {
			writeMessage(w, http.StatusNotFound, "Not found")
			return
		}
		files.ServeHTTP(w, r)
	})
}
