// Package styles extracts a normalized design style system from a Figma
// document tree: a color palette with accessibility analysis, typography,
// spacing tokens, shadow effects, and grid systems.
//
// Extraction absorbs declared style definitions first, then recursively walks
// the node tree for inline values. Each facet is isolated: a fault inside one
// sub-pipeline empties that facet only and never aborts the others.
package styles

import (
	"fmt"
	"log/slog"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

// StyleSystem is the aggregate of all extracted style facets. Every map is
// keyed by the facet's composite key (hex for colors, family-size-weight for
// fonts, and so on).
type StyleSystem struct {
	Palette       map[string]*ColorEntry   `json:"palette"`
	Fonts         map[string]*FontToken    `json:"fonts"`
	Spacing       map[string]*SpacingToken `json:"spacing"`
	Shadows       map[string]*ShadowToken  `json:"shadows"`
	Grids         map[string]*GridToken    `json:"grids"`
	Accessibility ContrastReport           `json:"accessibility"`
	Confidence    float64                  `json:"confidence"`
	Error         string                   `json:"error,omitempty"`
}

// Empty reports whether no facet produced any value.
func (s *StyleSystem) Empty() bool {
	if s == nil {
		return true
	}
	return len(s.Palette) == 0 && len(s.Fonts) == 0 && len(s.Spacing) == 0 &&
		len(s.Shadows) == 0 && len(s.Grids) == 0
}

// Extractor extracts a StyleSystem from a document tree.
type Extractor struct {
	logger *slog.Logger
}

// New creates a style extractor. A nil logger silences all output.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{logger: logger}
}

// Extract builds the style system for the document. Declared style definitions
// take precedence over inline node values on key collision; among inline
// values, the first occurrence wins. Extract never panics past its own
// boundary: an escaping fault yields a fallback system with confidence 0.1.
func (e *Extractor) Extract(document *figma.Node, declared map[string]figma.Style) (sys *StyleSystem) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("style extraction failed", "error", fmt.Sprint(r))
			sys = Fallback(fmt.Sprint(r))
		}
	}()

	sys = newSystem()

	e.facet("colors", func() { sys.Palette = make(map[string]*ColorEntry) }, func() {
		e.extractColors(document, declared, sys)
	})
	e.facet("typography", func() { sys.Fonts = make(map[string]*FontToken) }, func() {
		e.extractTypography(document, declared, sys)
	})
	e.facet("spacing", func() { sys.Spacing = make(map[string]*SpacingToken) }, func() {
		e.extractSpacing(document, sys)
	})
	e.facet("effects", func() { sys.Shadows = make(map[string]*ShadowToken) }, func() {
		e.extractEffects(document, declared, sys)
	})
	e.facet("grids", func() { sys.Grids = make(map[string]*GridToken) }, func() {
		e.extractGrids(document, declared, sys)
	})
	e.facet("accessibility", func() { sys.Accessibility = ContrastReport{} }, func() {
		sys.Accessibility = AnalyzeContrast(sys.Palette)
	})

	sys.Confidence = confidence(sys)
	return sys
}

// facet runs one sub-pipeline with fault isolation: a panic inside fn resets
// the facet to its empty value and extraction continues with the next facet.
func (e *Extractor) facet(name string, reset func(), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("style facet failed, continuing without it",
				"facet", name, "error", fmt.Sprint(r))
			reset()
		}
	}()
	fn()
}

// confidence is the fraction of the four primary facets (palette, fonts,
// spacing, shadows) that produced at least one value.
func confidence(s *StyleSystem) float64 {
	present := 0
	if len(s.Palette) > 0 {
		present++
	}
	if len(s.Fonts) > 0 {
		present++
	}
	if len(s.Spacing) > 0 {
		present++
	}
	if len(s.Shadows) > 0 {
		present++
	}
	return float64(present) / 4
}

// Fallback returns the minimal valid style system for a failed extraction:
// all facets empty, confidence 0.1, and the captured error text.
func Fallback(errText string) *StyleSystem {
	sys := newSystem()
	sys.Confidence = 0.1
	sys.Error = errText
	return sys
}

func newSystem() *StyleSystem {
	return &StyleSystem{
		Palette: make(map[string]*ColorEntry),
		Fonts:   make(map[string]*FontToken),
		Spacing: make(map[string]*SpacingToken),
		Shadows: make(map[string]*ShadowToken),
		Grids:   make(map[string]*GridToken),
	}
}
