package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/vk/taskorder/internal/api"
	"github.com/vk/taskorder/internal/config"
	"github.com/vk/taskorder/internal/ctxlog"
	"github.com/vk/taskorder/internal/realtime"
)

const shutdownTimeout = 10 * time.Second

// serve runs the HTTP API with the socket.io endpoint mounted until ctx is
// cancelled, then shuts everything down gracefully.
func (a *App) serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	settings, err := a.resolveServer(ctx)
	if err != nil {
		return err
	}

	rt := realtime.NewServer(a.logger)
	srv := api.NewServer(api.Config{
		Addr:           net.JoinHostPort(a.config.Host, strconv.Itoa(settings.Port)),
		AllowedOrigins: settings.AllowedOrigins,
		ReadTimeout:    settings.ReadTimeout,
		WriteTimeout:   settings.WriteTimeout,
	}, a.logger)
	srv.Mount(realtime.DefaultPath, rt.Handler())

	ln, err := net.Listen("tcp", srv.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr(), err)
	}

	if err := a.startHealthcheckServer(ctx, a.config.Host, settings.HealthcheckPort); err != nil {
		ln.Close()
		return err
	}
	defer a.closeHealthCheckServer(context.WithoutCancel(ctx))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("🚀 Scheduling API listening",
		"address", fmt.Sprintf("http://%s", ln.Addr()),
		"socketio_path", realtime.DefaultPath,
	)

	select {
	case err := <-errCh:
		rt.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("🏁 Shutting down scheduling API...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	rt.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Debug("Scheduling API shut down gracefully.")
	return nil
}

// resolveServer combines flags, the optional config file and the PORT
// environment variable, in that order of precedence.
func (a *App) resolveServer(ctx context.Context) (*config.Server, error) {
	flags := &config.Model{Server: &config.Server{
		Port:            a.config.Port,
		HealthcheckPort: a.config.HealthcheckPort,
		AllowedOrigins:  a.config.AllowedOrigins,
		ReadTimeout:     a.config.ReadTimeout,
		WriteTimeout:    a.config.WriteTimeout,
	}}

	if a.config.ConfigPath != "" {
		file, err := a.loader.Load(ctx, a.config.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		flags.Merge(&config.Model{Server: file.Server})
	}
	settings := flags.Server

	if settings.Port == 0 {
		settings.Port = DefaultPort
		if env := os.Getenv("PORT"); env != "" {
			port, err := strconv.Atoi(env)
			if err != nil || port <= 0 || port > 65535 {
				return nil, fmt.Errorf("invalid PORT environment variable %q", env)
			}
			settings.Port = port
		}
	}
	return settings, nil
}
