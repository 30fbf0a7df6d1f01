package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/heimdex/shotmanager/internal/config"
	"github.com/heimdex/shotmanager/internal/db"
	"github.com/heimdex/shotmanager/internal/host"
	"github.com/heimdex/shotmanager/internal/logging"
	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/store"
)

// app carries what every command shares: the viper instance behind the
// flags and the validated config.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.ViperConfig
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "shotmanager",
		Short:        "Manage shots and takes of a scene timeline",
		Long:         "shotmanager keeps named shots of a scene in takes, maps scene time to edit time and serves them over a local HTTP API.",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default .shotmanager.yaml in . or $HOME)")
	flags.String("data-dir", "", "directory holding the timeline database")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	a.v.BindPFlag(config.KeyDataDir, flags.Lookup("data-dir"))
	a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		newServeCmd(a),
		newTakesCmd(a),
		newImportCmd(a),
		newExportCmd(a),
	)
	return root
}

func (a *app) initConfig() error {
	if err := config.Setup(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.FromViper(a.v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) logger() *slog.Logger {
	return logging.NewLogger(a.cfg.LogLevel())
}

// openStore opens the timeline database of the configured data dir. The
// returned close function must be called when done.
func (a *app) openStore(logger *slog.Logger) (*store.SQLiteRepository, func() error, error) {
	if err := os.MkdirAll(a.cfg.DataDir(), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	database, err := db.New(a.cfg.DBPath(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store.NewRepository(database.Conn()), database.Close, nil
}

func (a *app) openSession(ctx context.Context, repo store.Repository, logger *slog.Logger) (*session.Session, *host.Memory, error) {
	h := host.NewMemory(a.cfg.FrameRate())
	sess, err := session.Open(ctx, repo, h, sessionOptions(a.cfg), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session: %w", err)
	}
	return sess, h, nil
}

func sessionOptions(cfg config.Config) session.Options {
	opts := session.DefaultOptions()
	opts.Navigation.ChangeTimeOnShotSwitch = cfg.ChangeTimeOnShotSwitch()
	opts.EditStartFrame = cfg.EditStartFrame()
	opts.NewShotDuration = cfg.NewShotDuration()
	opts.NewShotPrefix = cfg.NewShotPrefix()
	opts.Handles = cfg.Handles()
	return opts
}
