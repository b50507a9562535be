package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	adapthttp "slidecraft/internal/adapter/http"
	"slidecraft/internal/adapter/memory"
	"slidecraft/internal/adapter/postgres"
	"slidecraft/internal/ai"
	"slidecraft/internal/app"
	"slidecraft/internal/blocklist"
	"slidecraft/internal/cache"
	"slidecraft/internal/domain"
	"slidecraft/internal/fetch"
	"slidecraft/internal/search"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "listen address")
		databaseURL = flag.String("database-url", "", "postgres connection string; empty runs the in-memory store")
		uploadDir   = flag.String("upload-dir", "uploads", "root directory for uploaded files")
		jwtSecret   = flag.String("jwt-secret", "", "HMAC secret for access tokens")
		aiEndpoint  = flag.String("ai-endpoint", "", "generative text endpoint; empty uses the default")
		aiKey       = flag.String("ai-api-key", "", "generative text API key; empty disables /ai/ask")
		pixabayKey  = flag.String("pixabay-api-key", "", "stock-image API key; empty disables /search/images")
		wikiAPI     = flag.String("wiki-api", "", "MediaWiki API endpoint; empty uses the default")
		logLevel    = flag.String("log-level", "info", "minimum log level: debug, info, warn, error")
		logPretty   = flag.Bool("log-pretty", false, "human-readable console logs instead of JSON")
	)
	flag.Parse()

	logger := setupLogger(*logLevel, *logPretty)

	if *jwtSecret == "" {
		logger.Fatal().Msg("jwt-secret is required")
	}

	var (
		users  domain.UserRepository
		slides domain.SlideRepository
		files  domain.FileRepository
	)
	if *databaseURL != "" {
		db, err := postgres.Open(*databaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("db open failed")
		}
		defer func() { _ = db.Close() }()
		users, slides, files = db, postgres.NewSlideRepo(db), postgres.NewFileRepo(db)
	} else {
		logger.Warn().Msg("no database-url configured, falling back to the in-memory store")
		db := memory.New()
		users, slides, files = db, db.Slides(), db.Files()
	}

	fetcher := fetch.New()
	checker := blocklist.NewChecker(blocklist.DefaultSources(), fetcher)

	// Warm the blocklist so the first /safety request does not pay for the
	// downloads. A failed warm-up is retried lazily on demand.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := checker.EnsureLoaded(ctx, false); err != nil {
			logger.Warn().Err(err).Msg("initial blocklist load failed")
		}
	}()

	authSvc := app.NewAuthService(users, []byte(*jwtSecret))
	slideSvc := app.NewSlideService(slides)
	fileSvc := app.NewFileService(files, *uploadDir)

	aiClient := ai.New(*aiEndpoint, *aiKey)
	wiki := search.NewWikiClient(*wikiAPI, fetcher, cache.New())
	images := search.NewImageClient("", *pixabayKey, fetcher, cache.New())

	h := adapthttp.New(authSvc, slideSvc, fileSvc, aiClient, checker, wiki, images, logger).Handler()
	logger.Info().Str("addr", *addr).Msg("listening")
	if err := http.ListenAndServe(*addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func setupLogger(level string, pretty bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn", "warning":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out = os.Stderr
	var logger zerolog.Logger
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(out).With().Timestamp().Logger()
	}
	log.Logger = logger
	return logger
}
