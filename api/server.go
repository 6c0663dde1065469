package api

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"f1countdown/broadcaster"
	"f1countdown/calendar"
	"f1countdown/season"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// UpstreamStatusHeader tells clients whether /api/next was computed from
// fresh, stale or no upstream data. The body alone cannot distinguish an
// unreachable feed from a finished season.
const UpstreamStatusHeader = "X-Upstream-Status"

const apiTimeout = 45 * time.Second

type Server struct {
	cache       *season.Cache
	broadcaster *broadcaster.Broadcaster
	siteURL     string
	static      fs.FS
	startedAt   time.Time
	now         func() time.Time
}

func NewServer(cache *season.Cache, b *broadcaster.Broadcaster, siteURL string, static fs.FS) *Server {
	return &Server{
		cache:       cache,
		broadcaster: b,
		siteURL:     strings.TrimRight(siteURL, "/"),
		static:      static,
		startedAt:   time.Now().UTC(),
		now:         time.Now,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(apiTimeout))
		r.Get("/next", s.handleNext)
		r.Get("/calendar.ics", s.handleCalendar)
	})
	r.Get("/ws", s.handleWS)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/robots.txt", s.handleRobots)

	if s.static != nil {
		r.Handle("/*", http.FileServer(http.FS(s.static)))
	}
	return r
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("requestId", middleware.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	resp, availability := season.Next(r.Context(), s.cache, s.now().UTC())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set(UpstreamStatusHeader, string(availability))

	body, err := json.Marshal(resp)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("error encoding next race JSON")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Write(body)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := s.now().UTC()
	snap, err := s.cache.Get(r.Context(), now)
	if err != nil {
		http.Error(w, "Season data not yet available", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="f1.ics"`)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(calendar.Build(snap.Races, s.host(), snap.FetchedAt)))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	resp, _ := season.Next(r.Context(), s.cache, s.now().UTC())
	initial, err := json.Marshal(resp)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("error encoding initial next race message")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.broadcaster.HandleConnections(w, r, initial)
}

func (s *Server) host() string {
	u, err := url.Parse(s.siteURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Hostname()
}
