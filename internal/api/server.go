// Package api serves the box-score tables and the record logs over HTTP.
package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"

	"github.com/fadedpez/dugout/internal/logging"
	"github.com/fadedpez/dugout/pkg/entities"
	"github.com/fadedpez/dugout/pkg/services/statistics"
	"github.com/fadedpez/dugout/pkg/storage"
)

// RecordsService is the write side the API drives
type RecordsService interface {
	AddPlateAppearance(ctx context.Context, rec *entities.BattingRecord) (*entities.BattingRecord, error)
	EditPlateAppearance(ctx context.Context, rec *entities.BattingRecord) (*entities.BattingRecord, error)
	ClearBatting(ctx context.Context) error
	DeletePlateAppearance(ctx context.Context, id string) error
	Undo(ctx context.Context) (*storage.Snapshot, error)
	ImportBatting(ctx context.Context, recs []*entities.BattingRecord) (int, error)
	AddOuting(ctx context.Context, rec *entities.PitchingRecord) (*entities.PitchingRecord, error)
	DeleteOuting(ctx context.Context, id string) error
	ImportPitching(ctx context.Context, recs []*entities.PitchingRecord) (int, error)
	Batting(ctx context.Context) ([]*entities.BattingRecord, error)
	Pitching(ctx context.Context) ([]*entities.PitchingRecord, error)
	Roster(ctx context.Context, kind entities.RosterKind) ([]string, error)
	AddToRoster(ctx context.Context, kind entities.RosterKind, name string) ([]string, error)
	RemoveFromRoster(ctx context.Context, kind entities.RosterKind, name string) ([]string, error)
	ReplaceRoster(ctx context.Context, kind entities.RosterKind, names []string) ([]string, error)
	OnChange(fn func())
}

// StatisticsService is the read side the API queries
type StatisticsService interface {
	BattingTable(ctx context.Context, f statistics.Filter, state statistics.SortState[statistics.BattingSortKey]) (*statistics.BattingTable, error)
	PitchingTable(ctx context.Context, f statistics.Filter, state statistics.SortState[statistics.PitchingSortKey]) (*statistics.PitchingTable, error)
	Chart(ctx context.Context, f statistics.Filter) (*statistics.Chart, error)
	PlayerDetail(ctx context.Context, player string, f statistics.Filter) (*statistics.PlayerDetail, error)
	Months(ctx context.Context) (*statistics.Months, error)
}

// Options configures the server
type Options struct {
	CORSOrigins    []string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

// Server holds the dependencies of the HTTP handlers
type Server struct {
	records    RecordsService
	statistics StatisticsService
	cache      *cache.Cache
	options    Options
	log        *logging.Logger
	now        func() time.Time

	// bumped on every invalidation
	generation atomic.Uint64
}

// NewServer creates a new server. Read responses are cached for
// options.CacheTTL and the whole cache is flushed whenever records
// reports a change, whether it came through the API or not.
func NewServer(records RecordsService, stats StatisticsService, options Options) *Server {
	if options.CacheTTL <= 0 {
		options.CacheTTL = 5 * time.Minute
	}
	if options.RequestTimeout <= 0 {
		options.RequestTimeout = 30 * time.Second
	}
	if options.MaxUploadBytes <= 0 {
		options.MaxUploadBytes = 10 << 20
	}
	if len(options.CORSOrigins) == 0 {
		options.CORSOrigins = []string{"*"}
	}
	s := &Server{
		records:    records,
		statistics: stats,
		cache:      cache.New(options.CacheTTL, 2*options.CacheTTL),
		options:    options,
		log:        logging.Default,
		now:        time.Now,
	}
	records.OnChange(s.invalidate)
	return s
}

// SetLogger replaces the default logger
func (s *Server) SetLogger(l *logging.Logger) {
	s.log = l
}

// Router builds the chi router with middleware and all routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.options.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.options.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Cache"},
		MaxAge:         300,
	}))

	r.Get("/health", s.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// Batting
		r.Get("/batting", s.GetBatting)
		r.Post("/batting", s.CreatePlateAppearance)
		r.Delete("/batting", s.ClearBatting)
		r.Get("/batting/chart", s.GetBattingChart)
		r.Get("/batting/months", s.GetBattingMonths)
		r.Get("/batting/records", s.GetBattingRecords)
		r.Post("/batting/undo", s.Undo)
		r.Put("/batting/{id}", s.UpdatePlateAppearance)
		r.Delete("/batting/{id}", s.DeletePlateAppearance)
		r.Get("/players/{name}", s.GetPlayer)

		// Pitching
		r.Get("/pitching", s.GetPitching)
		r.Post("/pitching", s.CreateOuting)
		r.Get("/pitching/months", s.GetPitchingMonths)
		r.Get("/pitching/records", s.GetPitchingRecords)
		r.Delete("/pitching/{id}", s.DeleteOuting)

		// CSV
		r.Get("/export/{kind}.csv", s.Export)
		r.Post("/import/{kind}", s.Import)

		// Rosters
		r.Get("/rosters/{kind}", s.GetRoster)
		r.Post("/rosters/{kind}", s.AddToRoster)
		r.Put("/rosters/{kind}", s.ReplaceRoster)
		r.Delete("/rosters/{kind}/{name}", s.RemoveFromRoster)
		r.Get("/rosters/{kind}/csv", s.ExportRoster)
		r.Post("/rosters/{kind}/csv", s.ImportRoster)
	})

	return r
}

// requestLogger logs each request with its status and duration
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("%s %s %d %s [%s]", r.Method, r.URL.RequestURI(), ww.Status(),
			time.Since(start).Round(time.Millisecond), chimiddleware.GetReqID(r.Context()))
	})
}
