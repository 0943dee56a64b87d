package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/glot/internal/cli/config"
	"github.com/leapstack-labs/glot/pkg/glot"
)

// TranspileOptions holds options for the transpile command.
type TranspileOptions struct {
	Expr  string
	Watch bool
}

// watchDebounce is how long the watcher waits for writes to settle.
const watchDebounce = 100 * time.Millisecond

// NewTranspileCommand creates the transpile command.
func NewTranspileCommand() *cobra.Command {
	opts := &TranspileOptions{}

	cmd := &cobra.Command{
		Use:   "transpile [files...]",
		Short: "Convert SQL from one dialect to another",
		Long: `Parse SQL with the read dialect and render it with the write dialect.

Input comes from --execute, from the named files, or from stdin. Each
statement is transpiled independently and printed in input order.`,
		Example: `  # Transpile an inline statement
  glot transpile -r duckdb -w tsql -e "SELECT a FROM t LIMIT 5"

  # Transpile files and re-run whenever they change
  glot transpile -w snowflake --watch models/*.sql

  # Read from stdin
  cat query.sql | glot transpile -r mysql -w postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetCurrentConfig()
			if opts.Watch {
				if opts.Expr != "" || len(args) == 0 {
					return errors.New("--watch needs at least one file argument")
				}
				return runWatch(cmd.Context(), cmd, cfg, args)
			}
			return runTranspile(cmd, cfg, opts.Expr, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Expr, "execute", "e", "", "SQL to transpile instead of reading files")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-transpile files when they change")

	return cmd
}

func runTranspile(cmd *cobra.Command, cfg *config.Config, expr string, args []string) error {
	sources, err := readSources(cmd, expr, args)
	if err != nil {
		return err
	}
	opts := transpileOptions(cmd.Context(), cfg)
	for _, src := range sources {
		if len(sources) > 1 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n", src.Name)
		}
		out, err := glot.Transpile(src.SQL, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", src.Name, err)
		}
		writeStatements(cmd.OutOrStdout(), out, cfg.Pretty)
	}
	return nil
}

// runWatch transpiles each file once, then again whenever it is written,
// until the context is cancelled. Errors in a changed file are reported
// without stopping the watch.
func runWatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, files []string) error {
	logger := config.GetLogger(ctx)
	opts := transpileOptions(ctx, cfg)
	w := cmd.OutOrStdout()

	watched := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := transpileFile(w, cmd.ErrOrStderr(), abs, opts, cfg.Pretty); err != nil {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories; editors often replace files instead of
	// writing them in place.
	dirs := map[string]bool{}
	for f := range watched {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	changed := make(chan string)
	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return watchEvents(egctx, watcher, watched, changed, logger)
	})

	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case path := <-changed:
				logger.Debug("file changed, transpiling", "file", path)
				if err := transpileFile(w, cmd.ErrOrStderr(), path, opts, cfg.Pretty); err != nil {
					logger.Error("transpile failed", "file", path, "error", err)
				}
			}
		}
	})

	return eg.Wait()
}

// watchEvents forwards debounced change notifications for watched files.
func watchEvents(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]bool, changed chan<- string, logger *slog.Logger) error {
	timers := map[string]*time.Timer{}
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || !watched[path] {
				continue
			}

			// Debounce
			if t := timers[path]; t != nil {
				t.Stop()
			}
			timers[path] = time.AfterFunc(watchDebounce, func() {
				select {
				case changed <- path:
				case <-ctx.Done():
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

func transpileFile(w, errW io.Writer, path string, opts []glot.Option, pretty bool) error {
	src, err := readSource(nil, path)
	if err != nil {
		return err
	}
	out, err := glot.Transpile(src.SQL, opts...)
	_, _ = fmt.Fprintf(w, "-- %s\n", src.Name)
	if err != nil {
		_, _ = fmt.Fprintf(errW, "Error: %v\n", err)
		return nil
	}
	writeStatements(w, out, pretty)
	return nil
}
