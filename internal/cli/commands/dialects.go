package commands

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/glot"
)

// dialectInfo is the listing row for one dialect.
type dialectInfo struct {
	Name          string   `json:"name"`
	Aliases       []string `json:"aliases,omitempty"`
	Quote         string   `json:"quote"`
	Normalization string   `json:"normalization"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List the registered SQL dialects",
		Long:  `List every dialect accepted by --read and --write, with its aliases and identifier rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := listDialects()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}
			renderDialects(cmd.OutOrStdout(), infos)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the listing as JSON")

	return cmd
}

func listDialects() []dialectInfo {
	names := glot.Dialects()
	infos := make([]dialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		infos = append(infos, dialectInfo{
			Name:          name,
			Aliases:       dialect.Aliases(name),
			Quote:         d.Identifiers.Quote + d.Identifiers.QuoteEnd,
			Normalization: normalizationName(d.Identifiers.Normalization),
		})
	}
	return infos
}

func normalizationName(n core.NormalizationStrategy) string {
	switch n {
	case core.NormUppercase:
		return "uppercase"
	case core.NormCaseSensitive:
		return "case sensitive"
	case core.NormCaseInsensitive:
		return "case insensitive"
	default:
		return "lowercase"
	}
}

func renderDialects(w io.Writer, infos []dialectInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dialect", "Aliases", "Quote", "Identifiers"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, strings.Join(info.Aliases, ", "), info.Quote, info.Normalization})
	}
	t.Render()
}
