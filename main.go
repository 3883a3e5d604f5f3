package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"Atex/internal/auth"
	"Atex/internal/calc/importer"
	"Atex/internal/calc/report"
	"Atex/internal/calc/zone"
	"Atex/internal/config"
	"Atex/internal/gas"
	"Atex/internal/httpx"
	"Atex/internal/observability"
	"Atex/internal/repo"
	"Atex/internal/scenario"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

type deps struct {
	cfg     *config.Config
	db      *sql.DB
	gases   *gas.Table
	logger  *slog.Logger
	metrics *observability.Metrics
}

func CORS(origin string, mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, d deps) {
	authEnv := &auth.Authenv{
		JWTkey:       []byte(d.cfg.TokenKey),
		Repo:         repo.NewPostgresUserDB(d.db),
		Logger:       d.logger,
		SecureCookie: d.cfg.TLSEnabled(),
	}
	limiter := auth.NewIPRateLimiter(rate.Limit(d.cfg.RateLimitRPS), d.cfg.RateLimitBurst)

	workspaces := scenario.NewWorkspaces()
	zoneH := &zone.Handler{Gases: d.gases, Logger: d.logger, Metrics: d.metrics}
	scenarioH := &scenario.Handler{Gases: d.gases, Workspaces: workspaces, Logger: d.logger, Metrics: d.metrics}
	importH := &importer.Handler{Gases: d.gases, Workspaces: workspaces, Logger: d.logger, Metrics: d.metrics}
	reportH := &report.Handler{
		Workspaces: workspaces,
		Exporter:   report.NewExporter(clockwork.NewRealClock()),
		TempDir:    d.cfg.TempDir,
		Logger:     d.logger,
		Metrics:    d.metrics,
	}

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/tools/zone/gases", scenarioH.GasList).Methods("GET")
	secureApi.HandleFunc("/tools/zone/calc", zoneH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/zone/scenarios", scenarioH.Add).Methods("POST")
	secureApi.HandleFunc("/tools/zone/scenarios", scenarioH.List).Methods("GET")
	secureApi.HandleFunc("/tools/zone/scenarios", scenarioH.Clear).Methods("DELETE")
	secureApi.HandleFunc("/tools/zone/import", importH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/zone/report/pdf", reportH.PDF).Methods("GET")
	secureApi.HandleFunc("/tools/zone/report/xlsx", reportH.XLSX).Methods("GET")
	secureApi.HandleFunc("/tools/zone/diagram/pdf", reportH.Diagram).Methods("GET")

	mux.HandleFunc("/healthz", httpx.Health).Methods("GET")
	mux.Handle("/readyz", httpx.Ready(httpx.ReadinessFunc(d.db.PingContext))).Methods("GET")
	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

// loadGases reads the gas table from the configured source.
func loadGases(ctx context.Context, cfg *config.Config, db *sql.DB) (*gas.Table, error) {
	switch cfg.GasSource {
	case config.GasSourceEmbedded:
		return gas.Embedded()
	case config.GasSourcePostgres:
		props, err := repo.NewGasRepository(db).ListGases(ctx)
		if err != nil {
			return nil, err
		}
		return gas.NewTable(props)
	default:
		return gas.LoadFile(cfg.GasSource)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.TokenKey == "" {
		return errors.New("TOKEN_KEY environment variable is not set")
	}
	metrics := observability.NewMetrics()

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	gases, err := loadGases(ctx, cfg, db)
	if err != nil {
		return fmt.Errorf("load gas table: %w", err)
	}
	metrics.GasTableSize.Set(float64(gases.Len()))
	logger.Info("gas table loaded", "source", cfg.GasSource, "gases", gases.Len())

	mux := mux.NewRouter()
	HandleList(mux, deps{cfg: cfg, db: db, gases: gases, logger: logger, metrics: metrics})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: CORS(cfg.CORSOrigin, mux),
	}

	serveErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "addr", cfg.HTTPAddr, "tls", cfg.TLSEnabled())
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	wg.Wait()
	logger.Info("server stopped")
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
