// Package accent turns a calculator's color token ("from-blue-500 to-blue-600")
// into concrete gradient colors for the terminal and HTML renderers.
package accent

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Fallback is used for tokens that name no known color.
var Fallback = Accent{From: "#6B7280", To: "#4B5563"}

// Accent is a two-stop gradient in hex notation.
type Accent struct {
	From string
	To   string
}

// palette holds the 500 and 600 shades of the named colors.
var palette = map[string]map[string]string{
	"slate":   {"500": "#64748B", "600": "#475569"},
	"gray":    {"500": "#6B7280", "600": "#4B5563"},
	"red":     {"500": "#EF4444", "600": "#DC2626"},
	"orange":  {"500": "#F97316", "600": "#EA580C"},
	"amber":   {"500": "#F59E0B", "600": "#D97706"},
	"yellow":  {"500": "#EAB308", "600": "#CA8A04"},
	"lime":    {"500": "#84CC16", "600": "#65A30D"},
	"green":   {"500": "#22C55E", "600": "#16A34A"},
	"emerald": {"500": "#10B981", "600": "#059669"},
	"teal":    {"500": "#14B8A6", "600": "#0D9488"},
	"cyan":    {"500": "#06B6D4", "600": "#0891B2"},
	"sky":     {"500": "#0EA5E9", "600": "#0284C7"},
	"blue":    {"500": "#3B82F6", "600": "#2563EB"},
	"indigo":  {"500": "#6366F1", "600": "#4F46E5"},
	"violet":  {"500": "#8B5CF6", "600": "#7C3AED"},
	"purple":  {"500": "#A855F7", "600": "#9333EA"},
	"fuchsia": {"500": "#D946EF", "600": "#C026D3"},
	"pink":    {"500": "#EC4899", "600": "#DB2777"},
	"rose":    {"500": "#F43F5E", "600": "#E11D48"},
}

// Parse reads "from-<color>-<shade> to-<color>-<shade>". Missing stops copy
// the other one; unknown tokens yield Fallback. Literal hex stops
// ("from-#112233") are accepted as well.
func Parse(token string) Accent {
	var a Accent
	for _, part := range strings.Fields(token) {
		switch {
		case strings.HasPrefix(part, "from-"):
			a.From = lookup(strings.TrimPrefix(part, "from-"))
		case strings.HasPrefix(part, "to-"):
			a.To = lookup(strings.TrimPrefix(part, "to-"))
		}
	}

	switch {
	case a.From == "" && a.To == "":
		return Fallback
	case a.From == "":
		a.From = a.To
	case a.To == "":
		a.To = a.From
	}
	return a
}

// Blend returns n colors evenly spaced from From to To.
func (a Accent) Blend(n int) []string {
	if n <= 0 {
		return nil
	}
	from, err1 := colorful.Hex(a.From)
	to, err2 := colorful.Hex(a.To)
	if err1 != nil || err2 != nil {
		from, _ = colorful.Hex(Fallback.From)
		to, _ = colorful.Hex(Fallback.To)
	}

	out := make([]string, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = from.BlendLab(to, t).Clamped().Hex()
	}
	return out
}

func lookup(stop string) string {
	if strings.HasPrefix(stop, "#") {
		if _, err := colorful.Hex(stop); err == nil {
			return strings.ToUpper(stop)
		}
		return ""
	}

	i := strings.LastIndex(stop, "-")
	if i <= 0 {
		return ""
	}
	shades, ok := palette[stop[:i]]
	if !ok {
		return ""
	}
	return shades[stop[i+1:]]
}
