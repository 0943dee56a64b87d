package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glot/internal/cli/config"
	"github.com/leapstack-labs/glot/pkg/glot"
)

// source is one unit of SQL text read from a file, stdin or a flag.
type source struct {
	Name string
	SQL  string
}

// readSources collects the SQL to process. An inline expression wins over
// file arguments; with neither, stdin is read. A file named "-" is stdin.
func readSources(cmd *cobra.Command, expr string, args []string) ([]source, error) {
	if expr != "" {
		return []source{{Name: "<expr>", SQL: expr}}, nil
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	sources := make([]source, 0, len(args))
	for _, path := range args {
		src, err := readSource(cmd.InOrStdin(), path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func readSource(stdin io.Reader, path string) (source, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return source{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return source{Name: "<stdin>", SQL: string(data)}, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return source{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return source{Name: path, SQL: string(data)}, nil
}

// transpileOptions converts the loaded settings to glot options.
func transpileOptions(ctx context.Context, cfg *config.Config) []glot.Option {
	return []glot.Option{
		glot.Read(cfg.Read),
		glot.Write(cfg.Write),
		glot.Unsupported(cfg.Level()),
		glot.WithLogger(config.GetLogger(ctx)),
		glot.Generate(cfg.GeneratorOptions()...),
	}
}

// writeStatements prints generated statements. A lone statement is printed
// as is; several are terminated with semicolons so the output parses back.
func writeStatements(w io.Writer, stmts []string, pretty bool) {
	if len(stmts) == 1 {
		_, _ = fmt.Fprintln(w, stmts[0])
		return
	}
	sep := "\n"
	if pretty {
		sep = "\n\n"
	}
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(stmt)
		b.WriteString(";")
	}
	_, _ = fmt.Fprintln(w, b.String())
}
