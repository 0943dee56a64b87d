package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glot/internal/cli/config"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
	"github.com/leapstack-labs/glot/pkg/glot"
)

const (
	replPrompt         = "glot> "
	replContinuePrompt = " ...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Transpile SQL interactively",
		Long: `Start an interactive session that transpiles each statement as it is
entered. Statements end with a semicolon and may span several lines.
Dot commands switch dialects and options without leaving the session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, config.GetCurrentConfig())
		},
	}
}

func runREPL(cmd *cobra.Command, cfg *config.Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newDotCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s := newREPLSession(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "glot REPL (%s)\n", s.describe())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		prompt, quit := s.handleLine(line)
		if quit {
			return nil
		}
		rl.SetPrompt(prompt)
	}
}

// historyFile returns the REPL history path under the user cache
// directory, or "" to disable history.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "glot")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

// replSession is the state of one interactive session. It is driven line
// by line so it can be exercised without a terminal.
type replSession struct {
	ctx         context.Context
	cfg         *config.Config
	read, write string
	pretty      bool
	out, errOut io.Writer
	pending     strings.Builder
}

func newREPLSession(ctx context.Context, cfg *config.Config, out, errOut io.Writer) *replSession {
	return &replSession{
		ctx:    ctx,
		cfg:    cfg,
		read:   cfg.Read,
		write:  cfg.Write,
		pretty: cfg.Pretty,
		out:    out,
		errOut: errOut,
	}
}

func (s *replSession) reset() {
	s.pending.Reset()
}

func (s *replSession) describe() string {
	write := s.write
	if write == "" {
		write = s.read
	}
	return fmt.Sprintf("read: %s, write: %s", s.read, write)
}

// handleLine consumes one input line and returns the next prompt. quit is
// true once the session should end.
func (s *replSession) handleLine(line string) (prompt string, quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return s.prompt(), false
	}

	// Dot commands are only recognized at the start of a statement.
	if s.pending.Len() == 0 && strings.HasPrefix(line, ".") {
		return replPrompt, s.dotCommand(line)
	}

	// Accumulate multi-line SQL until semicolon
	s.pending.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.pending.WriteString("\n")
		return replContinuePrompt, false
	}

	sql := s.pending.String()
	s.pending.Reset()
	s.transpile(sql)
	return replPrompt, false
}

func (s *replSession) prompt() string {
	if s.pending.Len() > 0 {
		return replContinuePrompt
	}
	return replPrompt
}

func (s *replSession) transpile(sql string) {
	opts := transpileOptions(s.ctx, s.cfg)
	opts = append(opts,
		glot.Read(s.read),
		glot.Write(s.write),
		glot.Generate(generator.Pretty(s.pretty)),
	)
	out, err := glot.Transpile(sql, opts...)
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return
	}
	for _, stmt := range out {
		_, _ = fmt.Fprintf(s.out, "%s;\n", stmt)
	}
}

func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".read", ".write":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "%s\n", s.describe())
			return false
		}
		if _, err := dialect.GetOrRaise(parts[1]); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		if command == ".read" {
			s.read = parts[1]
		} else {
			s.write = parts[1]
		}
		_, _ = fmt.Fprintf(s.out, "%s\n", s.describe())

	case ".dialects":
		renderDialects(s.out, listDialects())

	case ".pretty":
		s.pretty = !s.pretty
		state := "off"
		if s.pretty {
			state = "on"
		}
		_, _ = fmt.Fprintf(s.out, "pretty printing %s\n", state)

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .read [dialect]   Show or set the input dialect
  .write [dialect]  Show or set the output dialect
  .dialects         List registered dialects
  .pretty           Toggle pretty printing
  .quit / .exit     Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for dot commands and dialect names
`
	_, _ = fmt.Fprintln(w, help)
}

// newDotCompleter completes dot commands and dialect names.
func newDotCompleter() *readline.PrefixCompleter {
	var names []readline.PrefixCompleterInterface
	for _, name := range glot.Dialects() {
		names = append(names, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".read", names...),
		readline.PcItem(".write", names...),
		readline.PcItem(".dialects"),
		readline.PcItem(".pretty"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
