package figmacontext

import (
	"sort"
	"strings"

	"github.com/hellenic-development/figma-context/pkg/components"
	"github.com/hellenic-development/figma-context/pkg/nodes"
	"github.com/hellenic-development/figma-context/pkg/styles"
)

// DesignTokens consolidates the style system and component inventory into a
// flat, named token set ready for a token pipeline or documentation.
type DesignTokens struct {
	Colors     map[string]string `json:"colors"` // token name -> hex
	Fonts      []string          `json:"fonts"`
	Spacing    []float64         `json:"spacing"`
	Components []string          `json:"components"`
}

// smallTextThreshold is the font size below which text is flagged in the
// accessibility report.
const smallTextThreshold = 12.0

// AccessibilityReport combines the palette contrast analysis with text-node
// findings from the parsed node list.
type AccessibilityReport struct {
	Contrast       styles.ContrastReport `json:"contrast"`
	TextNodeCount  int                   `json:"textNodeCount"`
	SmallTextCount int                   `json:"smallTextCount"`
}

// consolidateTokens builds the design-token set. Color tokens take their name
// from the palette entry's style name; unnamed colors are skipped. Keys are
// iterated in sorted order so consolidation is deterministic.
func consolidateTokens(sys *styles.StyleSystem, comps map[string]components.Component) DesignTokens {
	tokens := DesignTokens{
		Colors:     map[string]string{},
		Fonts:      []string{},
		Spacing:    []float64{},
		Components: []string{},
	}
	if sys != nil {
		for _, hex := range sortedKeys(sys.Palette) {
			entry := sys.Palette[hex]
			if entry.Name == "" {
				continue
			}
			name := tokenName(entry.Name)
			if _, taken := tokens.Colors[name]; !taken {
				tokens.Colors[name] = entry.Hex
			}
		}
		tokens.Fonts = sortedKeys(sys.Fonts)
		seen := map[float64]bool{}
		for _, token := range sys.Spacing {
			if !seen[token.Value] {
				seen[token.Value] = true
				tokens.Spacing = append(tokens.Spacing, token.Value)
			}
		}
		sort.Float64s(tokens.Spacing)
	}
	tokens.Components = sortedKeys(comps)
	return tokens
}

// deriveAccessibility combines the already-computed palette contrast report
// with text metrics from the flattened node list.
func deriveAccessibility(parsed []nodes.Node, sys *styles.StyleSystem) AccessibilityReport {
	report := AccessibilityReport{}
	if sys != nil {
		report.Contrast = sys.Accessibility
	}
	for _, n := range parsed {
		if n.Type != "TEXT" {
			continue
		}
		report.TextNodeCount++
		if n.FontSize > 0 && n.FontSize < smallTextThreshold {
			report.SmallTextCount++
		}
	}
	return report
}

// tokenName normalizes a style name ("Primary/500", "Gray 100") into a kebab
// token name ("primary-500", "gray-100").
func tokenName(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
