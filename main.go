package main

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"statclinic/adapters/dataset"
	"statclinic/adapters/observer"
	"statclinic/adapters/postgres"
	"statclinic/adapters/stattest"
	"statclinic/app"
	"statclinic/internal/config"
	"statclinic/internal/logging"
	"statclinic/internal/migration"
	"statclinic/internal/testkit"
	"statclinic/ports"
	"statclinic/ui"
)

func main() {
	// Load environment variables from an optional .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Config{Level: "error"}).Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	store, cleanup, err := initStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize run store")
	}
	defer cleanup()

	catalog := dataset.NewCatalogAdapter()
	assessor := app.NewAssessmentService(stattest.NewSuite(), observer.NewZerologObserver(log))
	pipeline := app.NewPipelineService(assessor, catalog, store, cfg.Assess.Workers)

	// Assess the configured data file once at boot so the run store is
	// populated before the first request.
	if cfg.Assess.DataFile != "" {
		assessDataFile(pipeline, cfg, log)
	}

	httpApp := ui.NewApp(pipeline, catalog, log)
	log.Info().Str("port", cfg.Server.Port).Msg("starting statclinic server")
	if err := httpApp.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// initStore connects the configured run store: postgres when DATABASE_URL
// is set, in-memory otherwise.
func initStore(cfg *config.Config, log zerolog.Logger) (ports.AssessmentStorePort, func(), error) {
	if !cfg.Database.Enabled() {
		log.Warn().Msg("no DATABASE_URL configured, runs are kept in memory")
		return testkit.NewInMemoryStoreAdapter(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	if err := migration.NewRunner().Run(context.Background(), db); err != nil {
		db.Close()
		return nil, nil, err
	}

	log.Info().Int("max_open_conns", cfg.Database.MaxOpenConns).Msg("connected to postgres")
	return postgres.NewRunRepository(db), func() { db.Close() }, nil
}

// assessDataFile runs the configured source through the pipeline at boot.
// Failures are logged but never stop the server.
func assessDataFile(pipeline *app.PipelineService, cfg *config.Config, log zerolog.Logger) {
	params, err := cfg.Assess.Params()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid assessment defaults")
	}

	log.Info().Str("source", cfg.Assess.DataFile).Msg("assessing configured data file")
	frame, err := pipeline.AssessFrame(context.Background(), cfg.Assess.DataFile, nil, params)
	if err != nil {
		log.Error().Err(err).Str("source", cfg.Assess.DataFile).Msg("boot assessment failed")
		return
	}

	log.Info().
		Str("source", frame.Source).
		Int("completed", frame.Completed()).
		Int("failed", frame.Failed()).
		Msg("boot assessment finished")
}
