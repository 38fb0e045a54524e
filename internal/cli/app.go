package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Loboguar4/TaskForge/internal/config"
	"github.com/Loboguar4/TaskForge/internal/logging"
	"github.com/Loboguar4/TaskForge/internal/runlog"
	"github.com/Loboguar4/TaskForge/internal/storage"
	"github.com/Loboguar4/TaskForge/internal/store"
	"github.com/Loboguar4/TaskForge/internal/task"
)

// App bundles everything a command needs: config, logger, the task
// store and the optional run log.
type App struct {
	Config *config.Config
	Log    *zap.SugaredLogger
	Store  *store.Store
	Runs   *runlog.Store
}

// openApp loads config, builds the logger and opens the store.
//
// A corrupt task file aborts startup unless --discard-corrupt was
// given, in which case the old file is kept as <path>.corrupt and an
// empty store takes its place. Discarding is always this explicit,
// never silent.
func openApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	log := logging.New(cfg.Log)

	file := storage.NewFileStore(cfg.Store.Path)
	st, err := store.Open(file, log)
	if err != nil {
		if !errors.Is(err, storage.ErrCorruptStore) {
			return nil, err
		}
		if !discardCorrupt {
			return nil, fmt.Errorf("%w\n\nfix %s by hand, or rerun with --discard-corrupt to move it aside and start fresh",
				err, cfg.Store.Path)
		}

		backup := cfg.Store.Path + ".corrupt"
		if err := os.Rename(cfg.Store.Path, backup); err != nil {
			return nil, fmt.Errorf("failed to move corrupt store aside: %w", err)
		}
		log.Warnw("discarded corrupt task file", "path", cfg.Store.Path, "backup", backup)

		st, err = store.Open(file, log)
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Config: cfg,
		Log:    log,
		Store:  st,
	}

	if cfg.RunLog.Enabled {
		runs, err := runlog.Open(cfg.RunLog.Path)
		if err != nil {
			// The run log is history, not state: losing it degrades, never blocks.
			log.Warnw("run log unavailable", "path", cfg.RunLog.Path, "error", err)
		} else {
			app.Runs = runs
			st.SetRunRecorder(runs)
		}
	}

	return app, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	if a.Runs != nil {
		a.Runs.Close()
	}
	a.Log.Sync()
}

// resolveTask resolves a user-supplied query (id prefix or title
// fragment) to exactly one task. Ambiguity is an error that lists the
// candidates.
func (a *App) resolveTask(query string) (task.Task, error) {
	matches := a.Store.Search(query)
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("no task matches %q: %w", query, task.ErrNotFound)
	case 1:
		return matches[0], nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%q matches %d tasks:\n", query, len(matches))
	for _, t := range matches {
		fmt.Fprintf(&b, "  [%s] %s\n", t.ShortID(), t.Title)
	}
	b.WriteString("narrow the query or use a longer id prefix")
	return task.Task{}, errors.New(b.String())
}
