package dialect

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/generator"
)

// ANSI is the builtin default dialect. It accepts the common superset of
// syntax (QUALIFY, ILIKE, :: casts) and renders standard SQL.
// This is registered automatically when the package is loaded.
var ANSI = NewDialect("ansi").
	Clauses(QualifySelectClauses...).
	Operators(ANSIOperators, ILikeOperators, RLikeOperators, CastOperators, NullSafeOperators).
	JoinTypes(ANSIJoinTypes).
	Build()

func init() {
	// Register the builtin dialect and set it as default
	Register(ANSI, "default")
	SetDefault(ANSI)
	core.RegisterRenderer(render)
}

// render backs (*core.Expr).SQL.
func render(e *core.Expr, opts core.SQLOptions) (string, error) {
	d, err := GetOrRaise(opts.Dialect)
	if err != nil {
		return "", err
	}
	return d.Generate(e, generator.FromSQLOptions(opts)...)
}
