// Package prototypes builds the prototype-flow graph from transition
// annotations on the document tree.
package prototypes

import (
	"sort"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

// Transition is one directed edge in the prototype flow: the node carrying the
// interaction and the node it navigates to.
type Transition struct {
	From     string  `json:"from"`
	FromName string  `json:"fromName,omitempty"`
	To       string  `json:"to"`
	Duration float64 `json:"duration,omitempty"`
}

// Graph is the full prototype-flow graph for a document.
type Graph struct {
	Transitions []Transition `json:"transitions"`
	EntryPoints []string     `json:"entryPoints"`
	ScreenCount int          `json:"screenCount"`
}

// Mapper is the default prototype mapper collaborator.
type Mapper struct{}

// MapPrototypes collects transition edges in document order. Entry points are
// transition sources that no other transition targets; top-level frames count
// as screens.
func (Mapper) MapPrototypes(root *figma.Node) (*Graph, error) {
	graph := &Graph{
		Transitions: []Transition{},
		EntryPoints: []string{},
	}

	targets := make(map[string]bool)

	figma.Walk(root, func(n *figma.Node, depth int) {
		// Screens are the frames directly under a page.
		if n.Type == "FRAME" && depth <= 2 {
			graph.ScreenCount++
		}
		if n.TransitionNodeID != "" {
			graph.Transitions = append(graph.Transitions, Transition{
				From:     n.ID,
				FromName: n.Name,
				To:       n.TransitionNodeID,
				Duration: n.TransitionDuration,
			})
			targets[n.TransitionNodeID] = true
		}
	})

	seen := make(map[string]bool)
	for _, tr := range graph.Transitions {
		if !targets[tr.From] && !seen[tr.From] {
			graph.EntryPoints = append(graph.EntryPoints, tr.From)
			seen[tr.From] = true
		}
	}
	sort.Strings(graph.EntryPoints)

	return graph, nil
}
