package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"app/db"
	"app/internal/app/processor"
	"app/pkg/slg"
	"app/pkg/tools"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogchi "github.com/samber/slog-chi"
)

type Config struct {
	Port    int            `yaml:"port"`
	Timeout tools.Duration `yaml:"timeout"`
}

type API struct {
	cfg *Config

	logger *slog.Logger

	processor *processor.Service

	store db.DictionaryStore

	providers []string

	registry *prometheus.Registry
}

func NewAPI(cfg *Config, logger *slog.Logger, proc *processor.Service, store db.DictionaryStore,
	providers []string, registry *prometheus.Registry) *API {
	return &API{
		cfg: cfg,

		logger: logger,

		processor: proc,

		store: store,

		providers: providers,

		registry: registry,
	}
}

func (api *API) NewRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(slogchi.New(api.logger))
	router.Use(api.requestLogger)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.StripSlashes)

	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.HandlerFor(api.registry, promhttp.HandlerOpts{}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/", api.home)
	router.Get("/providers", api.listProviders)

	router.Post("/normalize", api.normalizeText)
	router.Post("/synthesize", api.synthesize)

	router.Get("/audio/{id}", api.audio)
	router.Get("/audio/{id}/download", api.audioDownload)

	router.Get("/ws/synthesize", api.wsSynthesize)

	router.Get("/dictionary", api.listDictionary)
	router.Get("/dictionary/base", api.baseDictionary)
	router.Get("/dictionary/search", api.searchDictionary)
	router.Get("/dictionary/{old_word}", api.getDictionary)
	router.Post("/dictionary", api.upsertDictionary)
	router.Post("/dictionary/suggest", api.suggestDictionary)
	router.Delete("/dictionary/{old_word}", api.deleteDictionary)

	return router
}

// requestLogger puts a request-scoped logger into the context so the
// pipeline can log with the request id attached.
func (api *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := api.logger.With("request_id", middleware.GetReqID(r.Context()))

		next.ServeHTTP(w, r.WithContext(slg.WithSlog(r.Context(), logger)))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type apiError struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, &apiError{Error: msg})
}
