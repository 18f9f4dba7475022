package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mediarelay/internal/httputil"
	"mediarelay/internal/provider"
	"mediarelay/internal/server"
	"mediarelay/internal/upstream"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

// newUpstream builds the shared upstream client from cfg.
func newUpstream() (*upstream.Client, error) {
	profiles, err := upstream.NewProfiles(cfg.ShortVideoBase, cfg.MusicBase)
	if err != nil {
		return nil, err
	}

	var factory httputil.DoerFactory
	if cfg.BrowserTLS {
		debugf("upstream: chrome tls fingerprint")
		factory = httputil.BrowserFactory(cfg.UpstreamTimeoutSeconds)
	} else {
		factory = httputil.StdFactory(httputil.NewTransport(), time.Duration(cfg.UpstreamTimeoutSeconds)*time.Second)
	}
	return upstream.New(profiles, factory)
}

func serveRun(cmd *cobra.Command, args []string) error {
	client, err := newUpstream()
	if err != nil {
		return fmt.Errorf("creating upstream client: %w", err)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	app := server.New(cfg, server.Deps{
		Videos:  provider.NewTTSave(client),
		Music:   provider.NewSpotDown(client),
		Streams: client,
		Version: Version,
	})

	// No WriteTimeout: relays run as long as the upstream keeps sending.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":        srv.Addr,
			"version":     Version,
			"browser_tls": cfg.BrowserTLS,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return fmt.Errorf("listen failed: %w", err)
	}
	logrus.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("graceful shutdown failed")
		_ = srv.Close()
	}
	logrus.Info("server stopped")
	return nil
}
