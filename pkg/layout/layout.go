// Package layout analyzes the document's layout structure: common dimensions
// detected from node names, auto-layout usage, and grid adoption.
package layout

import (
	"strings"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

// Info captures the layout characteristics of a document. Header and sidebar
// dimensions come from name-based detection; the remaining fields summarize
// auto-layout and grid adoption across the tree.
type Info struct {
	HeaderHeight   float64 `json:"headerHeight,omitempty"`
	SidebarWidth   float64 `json:"sidebarWidth,omitempty"`
	ContentPadding float64 `json:"contentPadding,omitempty"`

	AutoLayoutFrames int `json:"autoLayoutFrames"`
	HorizontalFrames int `json:"horizontalFrames"`
	VerticalFrames   int `json:"verticalFrames"`
	GridFrames       int `json:"gridFrames"`
}

// Analyzer is the default layout analyzer collaborator.
type Analyzer struct{}

// AnalyzeLayout walks the tree and extracts layout measurements. Header
// heights and sidebar widths are detected from nodes whose names contain the
// relevant keyword; the first match wins.
func (Analyzer) AnalyzeLayout(root *figma.Node) (*Info, error) {
	info := &Info{}

	figma.Walk(root, func(n *figma.Node, _ int) {
		if box := n.AbsoluteBoundingBox; box != nil {
			name := strings.ToLower(n.Name)
			if info.HeaderHeight == 0 && strings.Contains(name, "header") {
				info.HeaderHeight = box.Height
			}
			if info.SidebarWidth == 0 && strings.Contains(name, "sidebar") {
				info.SidebarWidth = box.Width
			}
			if info.ContentPadding == 0 && strings.Contains(name, "content") && n.PaddingLeft > 0 {
				info.ContentPadding = n.PaddingLeft
			}
		}

		switch n.LayoutMode {
		case "HORIZONTAL":
			info.AutoLayoutFrames++
			info.HorizontalFrames++
		case "VERTICAL":
			info.AutoLayoutFrames++
			info.VerticalFrames++
		}

		if len(n.LayoutGrids) > 0 {
			info.GridFrames++
		}
	})

	return info, nil
}
