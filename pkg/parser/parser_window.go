package parser

import (
	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/token"
)

// Window specification parsing: OVER clauses, PARTITION BY, ORDER BY, frame specs.
//
// Grammar:
//
//	window_spec   → identifier | "(" [identifier] [PARTITION BY expr_list] [ORDER BY order_list] [frame_spec] ")"
//	frame_spec    → (ROWS|RANGE|GROUPS) frame_extent
//	frame_extent  → BETWEEN frame_bound AND frame_bound | frame_bound
//	frame_bound   → UNBOUNDED PRECEDING | UNBOUNDED FOLLOWING | CURRENT ROW | expr PRECEDING | expr FOLLOWING

// parseWindow parses the window specification after "fn OVER".
func (p *Parser) parseWindow(fn *core.Expr) *core.Expr {
	window := core.New(core.KindWindow, core.Args{"this": fn})

	// Named window reference
	if p.check(token.IDENT) || p.check(token.QIDENT) {
		window.Set("alias", p.parseIdentifier())
		return window
	}

	if !p.expect(token.LPAREN) {
		return nil
	}

	// Base window: OVER (w ORDER BY ...)
	if p.check(token.IDENT) || p.check(token.QIDENT) {
		window.Set("alias", p.parseIdentifier())
	}

	// PARTITION BY
	if p.match(token.PARTITION) {
		if !p.expect(token.BY) {
			return nil
		}
		window.Set("partition_by", p.parseExpressionList())
	}

	// ORDER BY
	if p.match(token.ORDER) {
		if !p.expect(token.BY) {
			return nil
		}
		window.Set("order", core.New(core.KindOrder, core.Args{"expressions": p.parseOrderByList()}))
	}

	// Frame specification
	if p.check(token.ROWS) || p.check(token.RANGE) || p.check(token.GROUPS) {
		spec := p.parseFrameSpec()
		if spec == nil {
			return nil
		}
		window.Set("spec", spec)
	}

	if p.failed() || !p.expect(token.RPAREN) {
		return nil
	}
	return window
}

// parseFrameSpec parses a window frame specification.
func (p *Parser) parseFrameSpec() *core.Expr {
	spec := core.New(core.KindWindowSpec, core.Args{"kind": p.token.Type.String()})
	p.nextToken() // ROWS, RANGE or GROUPS

	// BETWEEN ... AND ...
	if p.match(token.BETWEEN) {
		if !p.parseFrameBound(spec, "start") || !p.expect(token.AND) {
			return nil
		}
		if !p.parseFrameBound(spec, "end") {
			return nil
		}
		return spec
	}

	// Single bound
	if !p.parseFrameBound(spec, "start") {
		return nil
	}
	return spec
}

// parseFrameBound parses a frame bound into spec's key and key_side args.
func (p *Parser) parseFrameBound(spec *core.Expr, key string) bool {
	switch {
	case p.match(token.UNBOUNDED):
		spec.Set(key, "UNBOUNDED")

	case p.match(token.CURRENT):
		if !p.expect(token.ROW) {
			return false
		}
		spec.Set(key, "CURRENT ROW")
		return true

	default:
		// N PRECEDING or N FOLLOWING
		offset := p.parseExpression()
		if offset == nil {
			return false
		}
		spec.Set(key, offset)
	}

	switch {
	case p.match(token.PRECEDING):
		spec.Set(key+"_side", "PRECEDING")
	case p.match(token.FOLLOWING):
		spec.Set(key+"_side", "FOLLOWING")
	default:
		p.addError("expected PRECEDING or FOLLOWING in window frame, got " + p.describe(p.token))
		return false
	}
	return true
}
