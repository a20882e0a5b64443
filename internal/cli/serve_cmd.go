package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/medicaps/clubs-portal/internal/api"
	"github.com/medicaps/clubs-portal/internal/api/handler"
	"github.com/medicaps/clubs-portal/internal/api/middleware"
	"github.com/medicaps/clubs-portal/internal/api/token"
	"github.com/medicaps/clubs-portal/internal/core/service"
	"github.com/medicaps/clubs-portal/internal/infrastructure/queue"
	"github.com/medicaps/clubs-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	proxies, err := cfg.Login.ProxyNets()
	if err != nil {
		return err
	}

	st, sealer, b, err := openStore(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}
	defer func() {
		if err := b.close(); err != nil {
			log.Error().Err(err).Msg("close backend")
		}
	}()

	// The loop outlives ctx so requests in flight during shutdown still finish.
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	loop := queue.NewLoop(0, logger.Component("loop"))
	loop.Start(loopCtx)

	svcLog := logger.Component("service")
	e := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(st, sealer, svcLog),
		Gate:     service.NewGate(st),
		Clubs:    service.NewClubService(st, svcLog),
		Members:  service.NewMemberService(st, sealer, svcLog),
		Events:   service.NewEventService(st, svcLog),
		Guests:   service.NewGuestService(st),
		Tokens:   token.NewIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Loop:     loop,
		Throttle: middleware.NewThrottle(cfg.Login.Rate, cfg.Login.Burst),

		IPExtractor: ipExtractor(proxies),
		Backends:    map[string]handler.Pinger{b.name: st},
		Log:         logger.Component("http"),
	})

	errc := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("store", b.name).
			Bool("hash_passwords", cfg.HashPasswords).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return err
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// ipExtractor trusts X-Forwarded-For only from the given proxy ranges.
func ipExtractor(proxies []*net.IPNet) echo.IPExtractor {
	if len(proxies) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := make([]echo.TrustOption, 0, len(proxies))
	for _, n := range proxies {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
