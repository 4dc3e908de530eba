package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"donordash/internal/donordata"
	"donordash/internal/http/handlers"
	httpapi "donordash/internal/http/httpapi"
	"donordash/internal/infra"
	"donordash/internal/providers/assistant"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Dataset service: fetches both feeds and keeps the derived table in
	// memory behind an atomic swap.
	fetchClient := &http.Client{Timeout: cfg.FetchTimeout}
	data := donordata.NewService(fetchClient, cfg.PledgesURL, cfg.PaymentsURL, donordata.DeriveOptions{
		ExcludedPortfolios:    cfg.ExcludedPortfolios,
		CounterfactualDefault: cfg.CounterfactualDefault,
	})

	ctx := context.Background()
	if snap, err := data.Refresh(ctx); err != nil {
		// Keep serving; POST /v1/reload can recover once upstream is back.
		logger.Error().Err(err).Msg("initial dataset load failed")
	} else {
		logger.Info().
			Str("snapshot_id", snap.ID.String()).
			Int("pledges", snap.PledgeCount).
			Int("payments", snap.PaymentCount).
			Int("rows", len(snap.Table.Rows)).
			Msg("dataset loaded")
	}

	var responder assistant.Responder
	if cfg.OpenAIAPIKey != "" {
		r, err := assistant.NewOpenAIResponder(assistant.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure assistant")
		}
		responder = r
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set; assistant endpoint disabled")
	}

	window := donordata.FiscalWindow{Start: cfg.FiscalYTDStart, End: cfg.FiscalYTDEnd}
	app := handlers.NewApp(data, responder, window, logger)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
