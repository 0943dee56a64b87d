package dialect

import (
	"sort"
	"strings"
)

// TimeFormat translates time format strings between a dialect's native
// tokens and strftime, the canonical form stored in trees.
//
// Native tokens are matched longest first, so "HH24" wins over "HH". Text
// enclosed in the literal quote passes through untouched.
type TimeFormat struct {
	toStrftime   map[string]string
	fromStrftime map[string]string
	native       *trie
	canonical    *trie

	foldCase     bool
	literalQuote byte
	percent      bool
}

// TimeFormatOption configures a TimeFormat.
type TimeFormatOption func(*TimeFormat)

// FoldCase matches native tokens case-insensitively. Mapping keys must then
// be given in upper case.
func FoldCase() TimeFormatOption {
	return func(f *TimeFormat) { f.foldCase = true }
}

// LiteralQuote sets the character that encloses literal text in native
// formats, e.g. '"' for Snowflake and Postgres.
func LiteralQuote(q byte) TimeFormatOption {
	return func(f *TimeFormat) { f.literalQuote = q }
}

// NewTimeFormat builds a translator from a native → strftime mapping. When
// several native tokens map to the same directive, the longest one is used
// for output; ties go to the lexically smallest.
func NewTimeFormat(mapping map[string]string, opts ...TimeFormatOption) *TimeFormat {
	f := &TimeFormat{
		toStrftime:   make(map[string]string, len(mapping)),
		fromStrftime: make(map[string]string, len(mapping)),
		percent:      len(mapping) > 0,
	}
	for _, opt := range opts {
		opt(f)
	}

	natives := make([]string, 0, len(mapping))
	for native := range mapping {
		natives = append(natives, native)
	}
	sort.Strings(natives)

	for _, native := range natives {
		directive := mapping[native]
		key := native
		if f.foldCase {
			key = strings.ToUpper(native)
		}
		f.toStrftime[key] = directive
		if prev, ok := f.fromStrftime[directive]; !ok || len(native) > len(prev) {
			f.fromStrftime[directive] = native
		}
		if !strings.HasPrefix(native, "%") {
			f.percent = false
		}
	}

	f.native = newTrie(keysOf(f.toStrftime))
	f.canonical = newTrie(keysOf(f.fromStrftime))
	return f
}

func keysOf(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ToStrftime converts a native format string to strftime.
func (f *TimeFormat) ToStrftime(native string) string {
	var b strings.Builder
	for i := 0; i < len(native); {
		c := native[i]
		if f.literalQuote != 0 && c == f.literalQuote {
			end := strings.IndexByte(native[i+1:], c)
			if end < 0 {
				end = len(native) - i - 1
			}
			b.WriteString(strings.ReplaceAll(native[i+1:i+1+end], "%", "%%"))
			i += end + 2
			continue
		}
		if n := f.native.longest(native, i, f.foldCase); n > 0 {
			key := native[i : i+n]
			if f.foldCase {
				key = strings.ToUpper(key)
			}
			b.WriteString(f.toStrftime[key])
			i += n
			continue
		}
		switch {
		case c == '%' && f.percent && i+1 < len(native):
			// Directives with the same meaning in both forms are not mapped.
			b.WriteString(native[i : i+2])
			i += 2
			continue
		case c == '%':
			b.WriteString("%%")
		default:
			b.WriteByte(c)
		}
		i++
	}
	return b.String()
}

// FromStrftime converts a strftime format string to native tokens.
// Directives without a native equivalent are kept as is.
func (f *TimeFormat) FromStrftime(format string) string {
	var (
		b       strings.Builder
		letters strings.Builder
	)
	flush := func() {
		if letters.Len() == 0 {
			return
		}
		if f.literalQuote != 0 {
			b.WriteByte(f.literalQuote)
			b.WriteString(letters.String())
			b.WriteByte(f.literalQuote)
		} else {
			b.WriteString(letters.String())
		}
		letters.Reset()
	}
	literal := func(c byte) {
		if isLetter(c) {
			letters.WriteByte(c)
			return
		}
		flush()
		if c == '%' && f.percent {
			b.WriteString("%%")
			return
		}
		b.WriteByte(c)
	}

	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			literal(c)
			i++
			continue
		}
		if format[i+1] == '%' {
			literal('%')
			i += 2
			continue
		}
		n := f.canonical.longest(format, i, false)
		if n == 0 {
			n = 2
		}
		flush()
		directive := format[i : i+n]
		if native, ok := f.fromStrftime[directive]; ok {
			b.WriteString(native)
		} else {
			b.WriteString(directive)
		}
		i += n
	}
	flush()
	return b.String()
}

// Translate renders a format string held in a tree in the dialect's native
// spelling. Formats containing '%' are strftime; anything else is taken as
// native and normalized to the preferred spelling of each token.
func (f *TimeFormat) Translate(format string) string {
	if f.percent || strings.Contains(format, "%") {
		return f.FromStrftime(format)
	}
	return f.FromStrftime(f.ToStrftime(format))
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// trie finds the longest token starting at a position.
type trie struct {
	children map[byte]*trie
	end      bool
}

func newTrie(keys []string) *trie {
	root := &trie{children: make(map[byte]*trie)}
	for _, key := range keys {
		node := root
		for i := 0; i < len(key); i++ {
			next, ok := node.children[key[i]]
			if !ok {
				next = &trie{children: make(map[byte]*trie)}
				node.children[key[i]] = next
			}
			node = next
		}
		node.end = true
	}
	return root
}

// longest returns the length of the longest key that prefixes s[start:],
// or 0 when none does.
func (t *trie) longest(s string, start int, fold bool) int {
	best := 0
	node := t
	for i := start; i < len(s); i++ {
		c := s[i]
		if fold && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		next, ok := node.children[c]
		if !ok {
			break
		}
		node = next
		if node.end {
			best = i - start + 1
		}
	}
	return best
}
