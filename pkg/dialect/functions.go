// This file contains parser-side function builders that form the "toolbox"
// of reusable function mappings. Dialects register them with
// Builder.Function to map native spellings onto canonical kinds.
package dialect

import (
	"fmt"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/spi"
)

// DatePartVar converts a parsed date part argument (a bare name or a
// string such as 'day') to a canonical Var. Other expressions are
// returned unchanged.
func DatePartVar(e *core.Expr) *core.Expr {
	if e == nil {
		return nil
	}
	if e.IsString() || isBareName(e) {
		return core.Var(NormalizeDatePart(e.Name()))
	}
	return e
}

func anonymous(name string, args []*core.Expr) *core.Expr {
	return core.New(core.KindAnonymous, core.Args{"this": name, "expressions": args})
}

func arity(name string, args []*core.Expr, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("%s expects %d arguments, got %d", name, lo, len(args))
		}
		return fmt.Errorf("%s expects %d to %d arguments, got %d", name, lo, hi, len(args))
	}
	return nil
}

// UnitFirst builds kind from NAME(unit, value, date), the argument order of
// DATEADD and DATEDIFF in Snowflake, T-SQL and Databricks. For DATEDIFF the
// value is the start and date the end of the range.
func UnitFirst(name string, kind core.Kind) spi.FunctionBuilder {
	return func(args []*core.Expr) (*core.Expr, error) {
		if err := arity(name, args, 3, 3); err != nil {
			return nil, err
		}
		return core.New(kind, core.Args{
			"this":       args[2],
			"expression": args[1],
			"unit":       DatePartVar(args[0]),
		}), nil
	}
}

// TruncUnitFirst builds DateTrunc from NAME('unit', value). Other arities
// stay anonymous calls so extra arguments such as a time zone survive.
func TruncUnitFirst(name string) spi.FunctionBuilder {
	return func(args []*core.Expr) (*core.Expr, error) {
		if len(args) != 2 {
			return anonymous(name, args), nil
		}
		return core.New(core.KindDateTrunc, core.Args{"unit": DatePartVar(args[0]), "this": args[1]}), nil
	}
}

// UnitLast builds kind from NAME(date, value, unit), the argument order
// used by BigQuery.
func UnitLast(name string, kind core.Kind) spi.FunctionBuilder {
	return func(args []*core.Expr) (*core.Expr, error) {
		if err := arity(name, args, 2, 3); err != nil {
			return nil, err
		}
		e := core.New(kind, core.Args{"this": args[0], "expression": args[1]})
		if len(args) == 3 {
			e.Set("unit", DatePartVar(args[2]))
		}
		return e, nil
	}
}

// FormatOrder names where the format argument sits in a native call.
type FormatOrder int

const (
	// FormatLast is NAME(value, format).
	FormatLast FormatOrder = iota
	// FormatFirst is NAME(format, value).
	FormatFirst
)

// FormatFunc builds kind from a two argument call carrying a time format.
// A literal format is translated to strftime with tf; a nil tf means the
// dialect already speaks strftime. Calls of any other arity stay anonymous.
func FormatFunc(name string, kind core.Kind, tf *TimeFormat, order FormatOrder) spi.FunctionBuilder {
	return func(args []*core.Expr) (*core.Expr, error) {
		if len(args) != 2 {
			return anonymous(name, args), nil
		}
		value, format := args[0], args[1]
		if order == FormatFirst {
			value, format = args[1], args[0]
		}
		if format.IsString() && tf != nil {
			format = core.String(tf.ToStrftime(format.Text("this")))
		}
		return core.New(kind, core.Args{"this": value, "format": format}), nil
	}
}

// Renamed builds kind from the declared argument order, for native names
// the kind registry does not know.
func Renamed(kind core.Kind) spi.FunctionBuilder {
	return func(args []*core.Expr) (*core.Expr, error) {
		return core.FromArgList(kind, args), nil
	}
}

// IntervalArg builds kind from NAME(date, INTERVAL value unit), the form
// MySQL and BigQuery use for DATE_ADD and DATE_SUB. Other argument shapes
// keep the declared order.
func IntervalArg(kind core.Kind) spi.FunctionBuilder {
	return func(args []*core.Expr) (*core.Expr, error) {
		if len(args) != 2 || !args[1].Is(core.KindInterval) {
			return core.FromArgList(kind, args), nil
		}
		interval := args[1]
		e := core.New(kind, core.Args{"this": args[0], "expression": interval.This()})
		if unit := interval.ArgExpr("unit"); unit != nil {
			e.Set("unit", DatePartVar(unit))
		}
		return e, nil
	}
}
