package dialect

import (
	"github.com/leapstack-labs/glot/pkg/core"
)

// datePartArgs names the argument holding the date part of each kind.
var datePartArgs = map[core.Kind]string{
	core.KindDateAdd:   "unit",
	core.KindDateSub:   "unit",
	core.KindDateDiff:  "unit",
	core.KindDateTrunc: "unit",
	core.KindExtract:   "this",
}

var formatKinds = map[core.Kind]bool{
	core.KindStrToTime: true,
	core.KindStrToDate: true,
	core.KindTimeToStr: true,
}

var preparedKinds = []core.Kind{
	core.KindDateAdd, core.KindDateSub, core.KindDateDiff, core.KindDateTrunc, core.KindExtract,
	core.KindStrToTime, core.KindStrToDate, core.KindTimeToStr,
}

// Prepare returns the tree the generator renders for the dialect. Date
// parts are normalized first, then format strings are translated to the
// native spelling; renames and reshapes happen afterwards in the
// generator's transforms. Trees needing no change are returned as is;
// otherwise a rewritten copy is returned.
func (d *Dialect) Prepare(e *core.Expr) *core.Expr {
	if e == nil || e.Find(preparedKinds...) == nil {
		return e
	}
	return e.Transform(func(n *core.Expr) *core.Expr {
		if key, ok := datePartArgs[n.Kind()]; ok {
			d.normalizeUnit(n, key)
		}
		if formatKinds[n.Kind()] && d.timeFormat != nil {
			d.translateFormat(n)
		}
		return n
	})
}

func (d *Dialect) normalizeUnit(n *core.Expr, key string) {
	unit := n.ArgExpr(key)
	if !isBareName(unit) {
		return
	}
	name := unit.Name()
	if canonical := d.NormalizeDatePart(name); canonical != name || !unit.Is(core.KindVar) {
		n.Set(key, core.Var(canonical))
	}
}

// isBareName reports whether e is an unquoted, unqualified name.
func isBareName(e *core.Expr) bool {
	if e == nil {
		return false
	}
	switch e.Kind() {
	case core.KindVar:
		return true
	case core.KindIdentifier:
		return !e.Bool("quoted")
	case core.KindColumn:
		return !e.Has("table") && !e.This().Bool("quoted")
	}
	return false
}

func (d *Dialect) translateFormat(n *core.Expr) {
	format := n.ArgExpr("format")
	if !format.IsString() {
		return
	}
	text := format.Text("this")
	if native := d.timeFormat.Translate(text); native != text {
		n.Set("format", core.String(native))
	}
}
