package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snowflakeLike() *TimeFormat {
	return NewTimeFormat(map[string]string{
		"YYYY": "%Y",
		"YY":   "%y",
		"MMMM": "%B",
		"MON":  "%b",
		"MM":   "%m",
		"DD":   "%d",
		"DY":   "%a",
		"HH24": "%H",
		"HH12": "%I",
		"HH":   "%H",
		"MI":   "%M",
		"SS":   "%S",
		"FF":   "%f",
		"FF6":  "%f",
		"AM":   "%p",
		"PM":   "%p",
	}, FoldCase(), LiteralQuote('"'))
}

func TestTimeFormatTranslate(t *testing.T) {
	f := snowflakeLike()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"normalizes native spelling", "yyyy-mm-DD hh24:mi:ss", "YYYY-MM-DD HH24:MI:SS"},
		{"translates strftime", "%Y-%m-%dT%H:%M:%S", `YYYY-MM-DD"T"HH24:MI:SS`},
		{"keeps quoted spans", `YYYY"year"MM`, `YYYY"year"MM`},
		{"prefers longest token", "%H.%f", "HH24.FF6"},
		{"unknown directive passes", "%Q-%Y", "%Q-YYYY"},
		{"literal percent", "%Y%%", "YYYY%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Translate(tt.in))
		})
	}
}

func TestTimeFormatToStrftime(t *testing.T) {
	f := snowflakeLike()
	assert.Equal(t, "%Y-%m-%d %H:%M:%S", f.ToStrftime("YYYY-MM-DD HH24:MI:SS"))
	assert.Equal(t, "%d %b %Y", f.ToStrftime("dd mon yyyy"))
	assert.Equal(t, "%Yat%H", f.ToStrftime(`YYYY"at"HH24`))
	assert.Equal(t, "100%%", f.ToStrftime("100%"))
}

func TestTimeFormatPercentNative(t *testing.T) {
	// MySQL spells minutes %i and month names %M.
	f := NewTimeFormat(map[string]string{
		"%i": "%M",
		"%M": "%B",
		"%s": "%S",
	})
	assert.Equal(t, "%Y-%m-%d %H:%M:%S", f.ToStrftime("%Y-%m-%d %H:%i:%s"))
	assert.Equal(t, "%Y-%m-%d %H:%i:%s", f.FromStrftime("%Y-%m-%d %H:%M:%S"))
	assert.Equal(t, "%M %Y", f.Translate("%B %Y"))
	assert.Equal(t, "%%", f.FromStrftime("%%"))
}
