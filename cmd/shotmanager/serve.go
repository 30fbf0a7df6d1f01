package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/heimdex/shotmanager/internal/api"
	"github.com/heimdex/shotmanager/internal/config"
	"github.com/heimdex/shotmanager/internal/logging"
	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/store"
	"github.com/heimdex/shotmanager/internal/ui"
	"github.com/heimdex/shotmanager/internal/watcher"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the timeline over the local HTTP API (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
	cmd.Flags().Int("port", config.DefaultPort, "HTTP port on 127.0.0.1")
	cmd.Flags().Bool("headless", false, "run without the system tray")
	a.v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))
	a.v.BindPFlag(config.KeyHeadless, cmd.Flags().Lookup("headless"))
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	startTime := time.Now()
	logger := a.logger()
	logger.Info("starting shot manager", "version", Version, "data_dir", a.cfg.DataDir())

	repo, closeDB, err := a.openStore(logger)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instanceID, err := ensureInstanceID(ctx, repo)
	if err != nil {
		return fmt.Errorf("failed to ensure instance ID: %w", err)
	}
	authToken, err := ensureAuthToken(ctx, repo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	sess, _, err := a.openSession(ctx, repo, logger)
	if err != nil {
		return err
	}

	apiServer := api.NewServer(api.ServerConfig{
		Port:       a.cfg.Port(),
		Session:    sess,
		Repository: repo,
		Logger:     logger,
		StartTime:  startTime,
		Version:    Version,
		InstanceID: instanceID,
	})
	if err := apiServer.Listen(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Shot Manager v%s\n", Version)
	fmt.Fprintf(out, "  API URL:    http://%s\n", apiServer.Addr())
	fmt.Fprintf(out, "  Auth Token: %s\n", authToken)
	fmt.Fprintf(out, "  Data Dir:   %s\n", logging.SanitizePath(a.cfg.DataDir()))
	fmt.Fprintln(out)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown HTTP server", "error", err)
		}
		if err := sess.Save(shutdownCtx); err != nil {
			logger.Error("failed to save timeline", "error", err)
		}
		return nil
	})

	if path := a.v.ConfigFileUsed(); path != "" {
		w := watcher.NewFileWatcher(logger)
		w.OnChange(func(path string, event watcher.EventType) {
			a.reloadConfig(sess, logger, event)
		})
		if err := w.Watch(gctx, path); err != nil {
			logger.Warn("config file will not be reloaded", "error", err)
		} else {
			defer w.Stop()
		}
	}

	if a.cfg.Headless() {
		logger.Info("running in headless mode (no system tray)")
	} else {
		tray := ui.NewTray(ui.TrayConfig{
			Session: sess,
			Logger:  logger,
			OnQuit:  stop,
		})
		go func() {
			<-gctx.Done()
			tray.Quit()
		}()
		tray.Run()
		stop()
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// reloadConfig applies a changed config file to the running session. Port,
// data dir and log level only take effect on restart.
func (a *app) reloadConfig(sess *session.Session, logger *slog.Logger, event watcher.EventType) {
	if event == watcher.EventDelete {
		logger.Warn("config file removed, keeping current settings")
		return
	}
	if err := a.v.ReadInConfig(); err != nil {
		logger.Warn("failed to reread config file", "error", err)
		return
	}
	cfg, err := config.FromViper(a.v)
	if err != nil {
		logger.Warn("ignoring invalid config file", "error", err)
		return
	}
	sess.SetOptions(sessionOptions(cfg))
}

func ensureInstanceID(ctx context.Context, repo store.Repository) (string, error) {
	existing, err := repo.GetConfig(ctx, "instance_id")
	if err == nil && existing != "" {
		return existing, nil
	}

	id := uuid.NewString()
	if err := repo.SetConfig(ctx, "instance_id", id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureAuthToken(ctx context.Context, repo store.Repository) (string, error) {
	existing, err := repo.GetConfig(ctx, api.AuthTokenKey)
	if err == nil && existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := repo.SetConfig(ctx, api.AuthTokenKey, token); err != nil {
		return "", err
	}
	return token, nil
}
