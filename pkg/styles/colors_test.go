package styles

import (
	"testing"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

func solidFill(r, g, b float64) figma.Paint {
	return figma.Paint{Type: "SOLID", Color: &figma.Color{R: r, G: g, B: b, A: 1}}
}

func TestCategorizeColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Primary/500", CategoryPrimary},
		{"primary-button", CategoryPrimary},
		{"Secondary/200", CategorySecondary},
		{"Gray 100", CategoryNeutral},
		{"Grey/50", CategoryNeutral},
		{"Neutral/900", CategoryNeutral},
		{"Error/Red", CategorySemantic},
		{"Success Green", CategorySemantic},
		{"Warning", CategorySemantic},
		{"Info/Blue", CategorySemantic},
		{"Brand Highlight", CategoryAccent},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeColor(tt.name); got != tt.want {
				t.Errorf("CategorizeColor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestCategoryPriorityOrder(t *testing.T) {
	// "primary" outranks "gray" even when both substrings are present.
	if got := CategorizeColor("Primary Gray"); got != CategoryPrimary {
		t.Errorf("priority order broken: got %q, want %q", got, CategoryPrimary)
	}
	// "secondary" outranks "error".
	if got := CategorizeColor("Secondary Error"); got != CategorySecondary {
		t.Errorf("priority order broken: got %q, want %q", got, CategorySecondary)
	}
}

func TestExtractColorsMergesByHex(t *testing.T) {
	doc := &figma.Node{
		ID: "0", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "1", Name: "Button", Type: "RECTANGLE", Fills: []figma.Paint{solidFill(1, 0, 0)}},
			{ID: "2", Name: "Banner", Type: "RECTANGLE", Fills: []figma.Paint{solidFill(1, 0, 0)}},
			{ID: "3", Name: "Outline", Type: "RECTANGLE", Strokes: []figma.Paint{solidFill(0, 0, 1)}},
		},
	}

	sys := New(nil).Extract(doc, nil)

	red, ok := sys.Palette["#ff0000"]
	if !ok {
		t.Fatalf("palette missing #ff0000: %v", sys.Palette)
	}
	if red.UsageCount != 2 {
		t.Errorf("usageCount = %d, want 2", red.UsageCount)
	}
	if len(red.SourceNodeIDs) != 2 || red.SourceNodeIDs[0] != "1" || red.SourceNodeIDs[1] != "2" {
		t.Errorf("sourceNodeIds = %v, want [1 2]", red.SourceNodeIDs)
	}
	// First-seen name retained.
	if red.Name != "Button" {
		t.Errorf("name = %q, want Button", red.Name)
	}

	if _, ok := sys.Palette["#0000ff"]; !ok {
		t.Errorf("stroke color missing from palette: %v", sys.Palette)
	}
}

func TestExtractColorsSkipsExplicitlyInvisible(t *testing.T) {
	hidden := false
	fill := solidFill(0, 1, 0)
	fill.Visible = &hidden

	doc := &figma.Node{
		ID: "0", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "1", Name: "Ghost", Type: "RECTANGLE", Fills: []figma.Paint{fill}},
		},
	}

	sys := New(nil).Extract(doc, nil)
	if len(sys.Palette) != 0 {
		t.Errorf("invisible fill absorbed: %v", sys.Palette)
	}
}

func TestDeclaredStyleOverridesInlineName(t *testing.T) {
	declared := map[string]figma.Style{
		"s1": {
			Key: "s1", Name: "Primary/500", StyleType: "FILL",
			Fills: []figma.Paint{solidFill(1, 0, 0)},
		},
	}
	doc := &figma.Node{
		ID: "0", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "1", Name: "Some Rectangle", Type: "RECTANGLE", Fills: []figma.Paint{solidFill(1, 0, 0)}},
		},
	}

	sys := New(nil).Extract(doc, declared)

	red := sys.Palette["#ff0000"]
	if red == nil {
		t.Fatal("palette missing #ff0000")
	}
	// Declared name sticks, inline node still counts as usage.
	if red.Name != "Primary/500" {
		t.Errorf("name = %q, want Primary/500", red.Name)
	}
	if red.Category != CategoryPrimary {
		t.Errorf("category = %q, want %q", red.Category, CategoryPrimary)
	}
	if red.UsageCount != 2 {
		t.Errorf("usageCount = %d, want 2", red.UsageCount)
	}
}

func TestUnnamedColorUncategorized(t *testing.T) {
	doc := &figma.Node{
		ID: "0", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "1", Name: "", Type: "RECTANGLE", Fills: []figma.Paint{solidFill(0.2, 0.4, 0.6)}},
		},
	}

	sys := New(nil).Extract(doc, nil)
	for _, entry := range sys.Palette {
		if entry.Category != "" {
			t.Errorf("unnamed color was categorized as %q", entry.Category)
		}
	}
}
