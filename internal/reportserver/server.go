package reportserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"quizharvest/internal/aggregate"
)

// Config captures the settings for serving a results file.
type Config struct {
	Addr        string
	ResultsPath string
	Title       string
}

// Serve starts an HTTP server for the results file and stops it when ctx ends.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	if cfg.ResultsPath == "" {
		return errors.New("reportserver: results path is required")
	}
	results, err := aggregate.LoadFile(cfg.ResultsPath)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(results, cfg.Title),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
