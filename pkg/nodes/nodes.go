// Package nodes flattens the Figma document tree into an ordered list of node
// summaries with their visual properties, preserving document (z) order.
package nodes

import (
	"github.com/hellenic-development/figma-context/pkg/figma"
)

// Node describes a single parsed node with the visual properties downstream
// consumers care about.
type Node struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Depth int    `json:"depth"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	FillColors   []string `json:"fillColors,omitempty"`
	StrokeColors []string `json:"strokeColors,omitempty"`
	CornerRadius float64  `json:"cornerRadius,omitempty"`

	Text       string  `json:"text,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontWeight float64 `json:"fontWeight,omitempty"`

	LayoutMode string `json:"layoutMode,omitempty"`
	ChildCount int    `json:"childCount,omitempty"`
}

// Parser is the default node parser collaborator.
type Parser struct{}

// ParseNodes flattens the tree into pre-order summaries. The document root
// itself is skipped; every other node produces one entry.
func (Parser) ParseNodes(root *figma.Node) ([]Node, error) {
	parsed := []Node{}

	figma.Walk(root, func(n *figma.Node, depth int) {
		if depth == 0 {
			return
		}
		parsed = append(parsed, describe(n, depth))
	})

	return parsed, nil
}

func describe(n *figma.Node, depth int) Node {
	out := Node{
		ID:           n.ID,
		Name:         n.Name,
		Type:         n.Type,
		Depth:        depth,
		CornerRadius: n.CornerRadius,
		LayoutMode:   n.LayoutMode,
		ChildCount:   len(n.Children),
	}

	if box := n.AbsoluteBoundingBox; box != nil {
		out.Width = box.Width
		out.Height = box.Height
	}

	for _, fill := range n.Fills {
		if fill.Type == "SOLID" && fill.Color != nil && fill.IsVisible() {
			out.FillColors = append(out.FillColors, figma.ColorToHex(fill.Color))
		}
	}
	for _, stroke := range n.Strokes {
		if stroke.Type == "SOLID" && stroke.Color != nil && stroke.IsVisible() {
			out.StrokeColors = append(out.StrokeColors, figma.ColorToHex(stroke.Color))
		}
	}

	if n.Type == "TEXT" {
		out.Text = n.Characters
	}
	if n.Style != nil {
		out.FontFamily = n.Style.FontFamily
		out.FontSize = n.Style.FontSize
		out.FontWeight = n.Style.FontWeight
	}

	return out
}
