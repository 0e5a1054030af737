package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"event-console/observability"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	ConsoleSvcURL string
	StatsSvcURL   string
	// FrontendDir holds the built admin UI; empty disables static serving.
	FrontendDir string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

// hopHeaders are connection-scoped and never forwarded.
var hopHeaders = []string{
	"Connection", "Keep-Alive", "Proxy-Authenticate", "Proxy-Authorization",
	"Te", "Trailer", "Transfer-Encoding", "Upgrade",
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	})
}

// ProxyRequest forwards r to targetURL+path, streaming both bodies.
func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL, path string) {
	url := targetURL + path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		slog.ErrorContext(r.Context(), "build proxy request failed", slog.Any("error", err))
		writeMessage(w, http.StatusInternalServerError, "Server Error")
		return
	}
	req.Header = r.Header.Clone()
	for _, h := range hopHeaders {
		req.Header.Del(h)
	}
	req.ContentLength = r.ContentLength
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			req.Header.Set("X-Forwarded-For", host)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		slog.ErrorContext(r.Context(), "upstream unavailable",
			slog.String("target", targetURL),
			slog.String("path", path),
			slog.Any("error", err))
		writeMessage(w, http.StatusBadGateway, "Upstream service unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	for _, h := range hopHeaders {
		w.Header().Del(h)
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.WarnContext(r.Context(), "copy upstream response failed", slog.Any("error", err))
	}
}

func isStatsPath(path string) bool {
	return path == "/api/stats" || strings.HasPrefix(path, "/api/stats/") || path == "/api/activity"
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case isStatsPath(path):
		g.ProxyRequest(w, r, g.config.StatsSvcURL, path)
	case strings.HasPrefix(path, "/uploads/"):
		g.ProxyRequest(w, r, g.config.ConsoleSvcURL, path)
	case path == "/api" || strings.HasPrefix(path, "/api/"):
		trimmed := strings.TrimPrefix(path, "/api")
		if trimmed == "" || trimmed == "/" {
			writeMessage(w, http.StatusNotFound, "API route not found")
			return
		}
		g.ProxyRequest(w, r, g.config.ConsoleSvcURL, trimmed)
	default:
		g.serveFrontend(w, r)
	}
}

// serveFrontend serves built assets and falls back to index.html for client
// side routes.
func (g *Gateway) serveFrontend(w http.ResponseWriter, r *http.Request) {
	if g.config.FrontendDir == "" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	name := filepath.Join(g.config.FrontendDir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	index := filepath.Join(g.config.FrontendDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}
	http.ServeFile(w, r, index)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(observability.Middleware)
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.Handle("/metrics", observability.MetricsHandler()).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
