package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/glot/internal/cli/config"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/lineage"
)

// LineageOptions holds options for the lineage command.
type LineageOptions struct {
	Expr   string
	Schema string
	JSON   bool
}

// NewLineageCommand creates the lineage command.
func NewLineageCommand() *cobra.Command {
	opts := &LineageOptions{}

	cmd := &cobra.Command{
		Use:   "lineage [file]",
		Short: "Show which source columns feed each output column",
		Long: `Parse a single query with the read dialect and trace every output
column back to the table columns it is computed from.

SELECT * expands only when the columns of the referenced tables are known.
Pass them with --schema, a YAML file mapping table names to column lists:

  users: [id, name, email]
  analytics.orders: [id, user_id, amount]`,
		Example: `  glot lineage -e "SELECT u.name, SUM(o.amount) FROM users u JOIN orders o ON u.id = o.user_id GROUP BY 1"
  glot lineage --schema schema.yml --json model.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineage(cmd, config.GetCurrentConfig(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Expr, "execute", "e", "", "SQL to analyze instead of reading a file")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "YAML file mapping table names to their columns")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the lineage as JSON")

	return cmd
}

func runLineage(cmd *cobra.Command, cfg *config.Config, opts *LineageOptions, args []string) error {
	schema, err := loadSchema(opts.Schema)
	if err != nil {
		return err
	}
	d, err := dialect.GetOrRaise(cfg.Read)
	if err != nil {
		return err
	}

	sources, err := readSources(cmd, opts.Expr, args)
	if err != nil {
		return err
	}
	src := sources[0]

	result, err := lineage.ExtractLineageWithOptions(src.SQL, lineage.ExtractLineageOptions{
		Dialect: d,
		Schema:  schema,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", src.Name, err)
	}

	if opts.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	renderLineage(cmd.OutOrStdout(), result)
	return nil
}

// loadSchema reads a table to columns mapping. An empty path means no schema.
func loadSchema(path string) (lineage.Schema, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	var schema lineage.Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	return schema, nil
}

func renderLineage(w io.Writer, result *lineage.ModelLineage) {
	_, _ = fmt.Fprintf(w, "Sources: %s\n", strings.Join(result.Sources, ", "))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Transform", "Function", "From"})
	for _, col := range result.Columns {
		transform := "direct"
		if col.Transform == lineage.TransformExpression {
			transform = "expression"
		}
		from := make([]string, len(col.Sources))
		for i, s := range col.Sources {
			from[i] = s.Column
			if s.Table != "" {
				from[i] = s.Table + "." + s.Column
			}
		}
		t.AppendRow(table.Row{col.Name, transform, col.Function, strings.Join(from, ", ")})
	}
	t.Render()
}
