package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/glot/internal/cli/config"
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/glot"
)

// ASTOptions holds options for the ast command.
type ASTOptions struct {
	Expr string
}

// NewASTCommand creates the ast command.
func NewASTCommand() *cobra.Command {
	opts := &ASTOptions{}

	cmd := &cobra.Command{
		Use:   "ast [files...]",
		Short: "Print the syntax tree of SQL statements",
		Long: `Parse SQL with the read dialect and print the syntax tree.

The --output flag picks the encoding: yaml (default) and json print nested
maps keyed by argument name, msgpack writes the compact binary form that
can be loaded back into a tree.`,
		Example: `  glot ast -r duckdb -e "SELECT a::INT FROM t"
  glot ast -o json query.sql
  glot ast -o msgpack query.sql > query.ast`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetCurrentConfig()
			sources, err := readSources(cmd, opts.Expr, args)
			if err != nil {
				return err
			}

			var trees []*core.Expr
			for _, src := range sources {
				stmts, err := glot.Parse(src.SQL, glot.Read(cfg.Read))
				if err != nil {
					return fmt.Errorf("%s: %w", src.Name, err)
				}
				trees = append(trees, stmts...)
			}
			return writeAST(cmd.OutOrStdout(), trees, cfg.Output)
		},
	}

	cmd.Flags().StringVarP(&opts.Expr, "execute", "e", "", "SQL to parse instead of reading files")

	return cmd
}

// writeAST encodes trees in the requested format. Text formats get one
// document per statement.
func writeAST(w io.Writer, trees []*core.Expr, format string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, tree := range trees {
			if err := enc.Encode(core.ToMap(tree)); err != nil {
				return err
			}
		}
		return nil

	case config.OutputMsgpack:
		if isTerminal(w) {
			return errors.New("refusing to write msgpack to a terminal, redirect stdout to a file")
		}
		for _, tree := range trees {
			data, err := core.Dump(tree)
			if err != nil {
				return err
			}
			if _, err := w.Write(data); err != nil {
				return err
			}
		}
		return nil

	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, tree := range trees {
			if err := enc.Encode(core.ToMap(tree)); err != nil {
				return err
			}
		}
		return enc.Close()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
