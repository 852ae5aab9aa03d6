package styles

import (
	"slices"
	"sort"
	"strings"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

// Color categories. A color is assigned a category at most once, and only when
// it carries a name.
const (
	CategoryPrimary   = "primary"
	CategorySecondary = "secondary"
	CategoryNeutral   = "neutral"
	CategorySemantic  = "semantic"
	CategoryAccent    = "accent"
)

// ColorEntry is one unique color in the palette, keyed by its hex value.
// UsageCount grows monotonically as the tree is walked; SourceNodeIDs records
// every contributing node.
type ColorEntry struct {
	Hex           string     `json:"hex"`
	RGB           [3]float64 `json:"rgb"`
	Opacity       float64    `json:"opacity"`
	Name          string     `json:"name,omitempty"`
	Category      string     `json:"category,omitempty"`
	UsageCount    int        `json:"usageCount"`
	SourceNodeIDs []string   `json:"sourceNodeIds"`
}

// categoryRules is the fixed, ordered substring table for color
// categorization. First match wins; names matching nothing fall through to
// accent.
var categoryRules = []struct {
	substrings []string
	category   string
}{
	{[]string{"primary"}, CategoryPrimary},
	{[]string{"secondary"}, CategorySecondary},
	{[]string{"neutral", "gray", "grey"}, CategoryNeutral},
	{[]string{"error", "success", "warning", "info"}, CategorySemantic},
}

// CategorizeColor classifies a named color into exactly one category by
// substring match on the lowercased name. Unnamed colors return "".
func CategorizeColor(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.category
			}
		}
	}
	return CategoryAccent
}

// extractColors absorbs colors from declared FILL style definitions first,
// then from every node's fills and strokes across the whole tree. Fills and
// strokes whose visible flag is explicitly false are skipped.
func (e *Extractor) extractColors(document *figma.Node, declared map[string]figma.Style, sys *StyleSystem) {
	// Declared definitions first, in stable key order.
	for _, key := range sortedStyleKeys(declared) {
		style := declared[key]
		if style.StyleType != "FILL" {
			continue
		}
		for _, fill := range style.Fills {
			if fill.Type == "SOLID" && fill.Color != nil && fill.IsVisible() {
				absorbColor(sys, fill, style.Name, "", true)
			}
		}
	}

	figma.Walk(document, func(n *figma.Node, _ int) {
		for _, fill := range n.Fills {
			if fill.Type == "SOLID" && fill.Color != nil && fill.IsVisible() {
				absorbColor(sys, fill, n.Name, n.ID, false)
			}
		}
		for _, stroke := range n.Strokes {
			if stroke.Type == "SOLID" && stroke.Color != nil && stroke.IsVisible() {
				absorbColor(sys, stroke, n.Name, n.ID, false)
			}
		}
	})

	for _, entry := range sys.Palette {
		if entry.Category == "" {
			entry.Category = CategorizeColor(entry.Name)
		}
	}
}

// absorbColor merges one solid paint into the palette. Merging by hex key
// increments the usage count and appends the contributing node id. The
// first-seen opacity and name are retained unless a declared style overrides
// them.
func absorbColor(sys *StyleSystem, paint figma.Paint, name, nodeID string, fromDeclared bool) {
	hex := figma.ColorToHex(paint.Color)

	entry, ok := sys.Palette[hex]
	if !ok {
		entry = &ColorEntry{
			Hex:           hex,
			RGB:           [3]float64{paint.Color.R, paint.Color.G, paint.Color.B},
			Opacity:       paint.EffectiveOpacity(),
			Name:          name,
			SourceNodeIDs: []string{},
		}
		sys.Palette[hex] = entry
	} else if fromDeclared {
		entry.Name = name
		entry.Opacity = paint.EffectiveOpacity()
	}

	entry.UsageCount++
	if nodeID != "" && !slices.Contains(entry.SourceNodeIDs, nodeID) {
		entry.SourceNodeIDs = append(entry.SourceNodeIDs, nodeID)
	}
}

// sortedStyleKeys returns the declared style keys in lexical order so that
// extraction results are deterministic.
func sortedStyleKeys(declared map[string]figma.Style) []string {
	keys := make([]string, 0, len(declared))
	for k := range declared {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
