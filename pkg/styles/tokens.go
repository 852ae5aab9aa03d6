package styles

import (
	"fmt"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

// FontToken is one unique typography combination, keyed family-size-weight.
type FontToken struct {
	Family        string  `json:"family"`
	Size          float64 `json:"size"`
	Weight        float64 `json:"weight"`
	LineHeight    float64 `json:"lineHeight,omitempty"`
	LetterSpacing float64 `json:"letterSpacing,omitempty"`
	Name          string  `json:"name,omitempty"`
	Declared      bool    `json:"declared,omitempty"`
	UsageCount    int     `json:"usageCount"`
}

// SpacingToken is one unique spacing value, keyed kind-value.
type SpacingToken struct {
	Kind       string  `json:"kind"` // "padding" or "gap"
	Value      float64 `json:"value"`
	UsageCount int     `json:"usageCount"`
}

// ShadowToken is one unique shadow effect.
type ShadowToken struct {
	Type       string  `json:"type"` // DROP_SHADOW or INNER_SHADOW
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Blur       float64 `json:"blur"`
	Spread     float64 `json:"spread,omitempty"`
	Color      string  `json:"color"`
	Name       string  `json:"name,omitempty"`
	UsageCount int     `json:"usageCount"`
}

// GridToken is one unique layout grid definition, keyed pattern-sectionSize.
type GridToken struct {
	Pattern     string  `json:"pattern"`
	SectionSize float64 `json:"sectionSize,omitempty"`
	GutterSize  float64 `json:"gutterSize,omitempty"`
	Count       int     `json:"count,omitempty"`
	Name        string  `json:"name,omitempty"`
	UsageCount  int     `json:"usageCount"`
}

func fontKey(ts *figma.TypeStyle) string {
	return fmt.Sprintf("%s-%g-%g", ts.FontFamily, ts.FontSize, ts.FontWeight)
}

func spacingKey(kind string, value float64) string {
	return fmt.Sprintf("%s-%g", kind, value)
}

func shadowKey(effect figma.Effect, hex string) string {
	return fmt.Sprintf("%s-%g-%g-%g-%s", effect.Type, effect.Offset.X, effect.Offset.Y, effect.Radius, hex)
}

func gridKey(grid figma.LayoutGrid) string {
	return fmt.Sprintf("%s-%g", grid.Pattern, grid.SectionSize)
}

// extractTypography absorbs declared TEXT style definitions first, then inline
// text styles across the tree. Declared definitions win on key collision;
// among inline values the first occurrence wins.
func (e *Extractor) extractTypography(document *figma.Node, declared map[string]figma.Style, sys *StyleSystem) {
	for _, key := range sortedStyleKeys(declared) {
		style := declared[key]
		if style.StyleType != "TEXT" || style.TextStyle == nil || style.TextStyle.FontFamily == "" {
			continue
		}
		absorbFont(sys, style.TextStyle, style.Name, true)
	}

	figma.Walk(document, func(n *figma.Node, _ int) {
		if n.Style == nil || n.Style.FontFamily == "" {
			return
		}
		absorbFont(sys, n.Style, "", false)
	})
}

func absorbFont(sys *StyleSystem, ts *figma.TypeStyle, name string, fromDeclared bool) {
	key := fontKey(ts)

	token, ok := sys.Fonts[key]
	if !ok {
		sys.Fonts[key] = &FontToken{
			Family:        ts.FontFamily,
			Size:          ts.FontSize,
			Weight:        ts.FontWeight,
			LineHeight:    ts.LineHeightPx,
			LetterSpacing: ts.LetterSpacing,
			Name:          name,
			Declared:      fromDeclared,
			UsageCount:    1,
		}
		return
	}

	if fromDeclared && !token.Declared {
		token.Name = name
		token.Declared = true
		token.LineHeight = ts.LineHeightPx
		token.LetterSpacing = ts.LetterSpacing
	}
	token.UsageCount++
}

// extractSpacing absorbs padding and item-spacing values from auto-layout
// properties across the tree. First occurrence wins per key.
func (e *Extractor) extractSpacing(document *figma.Node, sys *StyleSystem) {
	figma.Walk(document, func(n *figma.Node, _ int) {
		for _, pad := range []float64{n.PaddingLeft, n.PaddingRight, n.PaddingTop, n.PaddingBottom} {
			if pad > 0 {
				absorbSpacing(sys, "padding", pad)
			}
		}
		if n.ItemSpacing > 0 {
			absorbSpacing(sys, "gap", n.ItemSpacing)
		}
	})
}

func absorbSpacing(sys *StyleSystem, kind string, value float64) {
	key := spacingKey(kind, value)
	if token, ok := sys.Spacing[key]; ok {
		token.UsageCount++
		return
	}
	sys.Spacing[key] = &SpacingToken{Kind: kind, Value: value, UsageCount: 1}
}

// extractEffects absorbs declared EFFECT style definitions first, then visible
// shadow effects from every node.
func (e *Extractor) extractEffects(document *figma.Node, declared map[string]figma.Style, sys *StyleSystem) {
	for _, key := range sortedStyleKeys(declared) {
		style := declared[key]
		if style.StyleType != "EFFECT" {
			continue
		}
		for _, effect := range style.Effects {
			if isShadow(effect) {
				absorbShadow(sys, effect, style.Name, true)
			}
		}
	}

	figma.Walk(document, func(n *figma.Node, _ int) {
		for _, effect := range n.Effects {
			if isShadow(effect) {
				absorbShadow(sys, effect, n.Name, false)
			}
		}
	})
}

func isShadow(effect figma.Effect) bool {
	return (effect.Type == "DROP_SHADOW" || effect.Type == "INNER_SHADOW") && effect.Visible
}

func absorbShadow(sys *StyleSystem, effect figma.Effect, name string, fromDeclared bool) {
	hex := figma.ColorToHex(effect.Color)
	key := shadowKey(effect, hex)

	token, ok := sys.Shadows[key]
	if !ok {
		sys.Shadows[key] = &ShadowToken{
			Type:       effect.Type,
			X:          effect.Offset.X,
			Y:          effect.Offset.Y,
			Blur:       effect.Radius,
			Spread:     effect.Spread,
			Color:      hex,
			Name:       name,
			UsageCount: 1,
		}
		return
	}

	if fromDeclared {
		token.Name = name
	}
	token.UsageCount++
}

// extractGrids absorbs declared GRID style definitions first, then layout
// grids attached to frames.
func (e *Extractor) extractGrids(document *figma.Node, declared map[string]figma.Style, sys *StyleSystem) {
	for _, key := range sortedStyleKeys(declared) {
		style := declared[key]
		if style.StyleType != "GRID" {
			continue
		}
		for _, grid := range style.LayoutGrids {
			absorbGrid(sys, grid, style.Name, true)
		}
	}

	figma.Walk(document, func(n *figma.Node, _ int) {
		for _, grid := range n.LayoutGrids {
			if grid.Visible != nil && !*grid.Visible {
				continue
			}
			absorbGrid(sys, grid, "", false)
		}
	})
}

func absorbGrid(sys *StyleSystem, grid figma.LayoutGrid, name string, fromDeclared bool) {
	key := gridKey(grid)

	token, ok := sys.Grids[key]
	if !ok {
		sys.Grids[key] = &GridToken{
			Pattern:     grid.Pattern,
			SectionSize: grid.SectionSize,
			GutterSize:  grid.GutterSize,
			Count:       grid.Count,
			Name:        name,
			UsageCount:  1,
		}
		return
	}

	if fromDeclared && token.Name == "" {
		token.Name = name
	}
	token.UsageCount++
}
