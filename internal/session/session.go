// Package session owns the timeline of one running shot manager: the model,
// its navigation state, the host scene and the store that keeps them.
// Every access goes through View or Update, which serialise callers.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/heimdex/shotmanager/internal/host"
	"github.com/heimdex/shotmanager/internal/ingest"
	"github.com/heimdex/shotmanager/internal/logging"
	"github.com/heimdex/shotmanager/internal/navigation"
	"github.com/heimdex/shotmanager/internal/store"
	"github.com/heimdex/shotmanager/internal/timeline"
)

type Options struct {
	Navigation navigation.Options

	// EditStartFrame seeds a timeline that has never been saved.
	EditStartFrame int

	NewShotDuration int
	NewShotPrefix   string
	Handles         int
}

func DefaultOptions() Options {
	return Options{
		Navigation:      navigation.DefaultOptions(),
		NewShotDuration: 50,
		NewShotPrefix:   "Sh",
		Handles:         10,
	}
}

// Tx is the view of the session handed to View and Update callbacks. It
// must not be retained after the callback returns.
type Tx struct {
	Model *timeline.Model
	Nav   *navigation.Controller
	Host  host.Host

	opts Options
}

type Session struct {
	mu sync.Mutex

	model    *timeline.Model
	nav      *navigation.Controller
	host     host.Host
	importer *ingest.Importer
	repo     store.Repository
	opts     Options
	logger   *slog.Logger

	listeners []func()
}

// Open loads the saved timeline from repo, or starts a new one with a
// default take. repo may be nil for a session that is never saved.
func Open(ctx context.Context, repo store.Repository, h host.Host, opts Options, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logging.WithComponent(logger, "session")

	var state *store.State
	if repo != nil {
		var err error
		state, err = repo.LoadState(ctx)
		if err != nil {
			return nil, fmt.Errorf("load timeline: %w", err)
		}
	}

	var model *timeline.Model
	if state != nil {
		model = timeline.Restore(state.Snapshot, logger)
		if model.ActiveTakeIndex() == -1 && model.TakeCount() > 0 {
			model.SetActiveTakeIndex(0)
		}
	} else {
		model = timeline.NewModel(logger)
		if err := model.SetEditStartFrame(opts.EditStartFrame); err != nil {
			return nil, err
		}
	}
	model.Initialize()

	nav := navigation.New(model, h, opts.Navigation, logger)
	if state != nil {
		nav.Restore(state.CurrentShotIndex, state.SelectedShotIndex)
	}

	s := &Session{
		model:    model,
		nav:      nav,
		host:     h,
		importer: ingest.NewImporter(model, h, logging.WithComponent(logger, "ingest")),
		repo:     repo,
		opts:     opts,
		logger:   logger,
	}
	logger.Info("session opened",
		"takes", model.TakeCount(),
		"active_take", model.ActiveTakeName(),
		"restored", state != nil,
	)
	return s, nil
}

func (s *Session) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// SetOptions replaces the options of a running session. The edit start
// frame of an existing timeline is left alone.
func (s *Session) SetOptions(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
	s.nav.SetOptions(opts.Navigation)
	s.logger.Info("session options updated",
		"change_time_on_shot_switch", opts.Navigation.ChangeTimeOnShotSwitch,
		"new_shot_duration", opts.NewShotDuration,
		"new_shot_prefix", opts.NewShotPrefix,
	)
}

func (s *Session) Host() host.Host { return s.host }

// OnChange registers fn to run after every successful Update.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) tx() *Tx {
	return &Tx{Model: s.model, Nav: s.nav, Host: s.host, opts: s.opts}
}

// View runs fn with exclusive access to the timeline. Reads of the current
// shot may repair a stale index, so View also takes the write lock.
func (s *Session) View(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.tx())
}

// Update runs fn with exclusive access to the timeline, then saves it.
func (s *Session) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	if err := fn(s.tx()); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.saveLocked(ctx)
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	for _, fn := range listeners {
		fn()
	}
	return nil
}

// Save writes the timeline to the store.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Session) saveLocked(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	current, selected := s.nav.State()
	state := store.State{
		Snapshot:          s.model.Snapshot(),
		CurrentShotIndex:  current,
		SelectedShotIndex: selected,
	}
	if err := s.repo.SaveState(ctx, state); err != nil {
		return fmt.Errorf("save timeline: %w", err)
	}
	return nil
}

// Import lays seq into a take and saves the result.
func (s *Session) Import(ctx context.Context, seq ingest.Sequence, opts ingest.Options) (ingest.Result, error) {
	var res ingest.Result
	err := s.Update(ctx, func(tx *Tx) error {
		var err error
		res, err = s.importer.Import(seq, opts)
		return err
	})
	return res, err
}

// ImportOptions returns the import defaults of this session.
func (s *Session) ImportOptions() ingest.Options {
	opts := ingest.DefaultOptions()
	opts.HandlesDuration = s.Options().Handles
	return opts
}
