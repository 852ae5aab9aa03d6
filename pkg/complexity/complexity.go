// Package complexity derives a heuristic engineering-complexity assessment
// from the structure of a Figma document tree: structural metrics, weighted
// factor scores, a development-time estimate, and architecture and
// state-management recommendations.
package complexity

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

// Level is an engineering-complexity band.
type Level string

const (
	LevelSimple     Level = "simple"
	LevelMedium     Level = "medium"
	LevelComplex    Level = "complex"
	LevelEnterprise Level = "enterprise"
)

// Metrics are the structural counts collected in a single depth-tracked
// traversal of the document tree.
type Metrics struct {
	ElementCount           int `json:"elementCount"`
	ComponentCount         int `json:"componentCount"`
	MaxDepth               int `json:"maxDepth"`
	AutoLayoutCount        int `json:"autoLayoutCount"`
	ComplexConstraintCount int `json:"complexConstraintCount"`
	FormCount              int `json:"formCount"`
	InputCount             int `json:"inputCount"`
}

// DataFlow classifies how much state the design implies and which
// state-management pattern fits it.
type DataFlow struct {
	Level   Level  `json:"level"`
	Pattern string `json:"pattern"`
}

// Report is the full complexity assessment for one document.
type Report struct {
	Metrics         Metrics           `json:"metrics"`
	Factors         map[string]Factor `json:"factors"`
	OverallScore    int               `json:"overallScore"`
	OverallLevel    Level             `json:"overallLevel"`
	Structure       Level             `json:"structure"`
	DataFlow        DataFlow          `json:"dataFlow"`
	StateManagement string            `json:"stateManagement"`
	Architecture    string            `json:"architecture"`
	Estimate        Estimate          `json:"estimate"`
	Recommendations []string          `json:"recommendations"`
}

// visualTypes is the fixed set of node types counted as rendered elements.
var visualTypes = map[string]bool{
	"RECTANGLE":         true,
	"TEXT":              true,
	"ELLIPSE":           true,
	"POLYGON":           true,
	"STAR":              true,
	"VECTOR":            true,
	"BOOLEAN_OPERATION": true,
	"INSTANCE":          true,
	"COMPONENT":         true,
}

// complexConstraints are the constraint rules that pin a node to multiple
// anchors or center it, on either axis.
var complexConstraints = map[string]bool{
	"TOP_BOTTOM": true,
	"LEFT_RIGHT": true,
	"CENTER":     true,
}

// Analyze computes the complexity report for a document. The declared
// framework steers the architecture recommendation; an unrecognized framework
// falls back to the component-based default.
func Analyze(document *figma.Node, framework string) *Report {
	metrics := CollectMetrics(document)

	factors := make(map[string]Factor, len(factorMetrics))
	for name, defs := range factorMetrics {
		factors[name] = scoreFactor(metrics, defs)
	}

	overall := overallScore(factors)
	level := levelForScore(float64(overall))
	dataFlow := ClassifyDataFlow(metrics)

	report := &Report{
		Metrics:         metrics,
		Factors:         factors,
		OverallScore:    overall,
		OverallLevel:    level,
		Structure:       StructureLevel(metrics),
		DataFlow:        dataFlow,
		StateManagement: dataFlow.Pattern,
		Architecture:    RecommendArchitecture(framework, level),
		Estimate:        estimate(level, factors, metrics),
	}
	report.Recommendations = recommend(report)

	return report
}

// CollectMetrics walks the tree once, tracking depth, and accumulates the
// structural counts.
func CollectMetrics(root *figma.Node) Metrics {
	var m Metrics

	figma.Walk(root, func(n *figma.Node, depth int) {
		if depth > m.MaxDepth {
			m.MaxDepth = depth
		}
		if visualTypes[n.Type] {
			m.ElementCount++
		}
		if n.Type == "COMPONENT" || n.Type == "INSTANCE" {
			m.ComponentCount++
		}
		if n.LayoutMode != "" {
			m.AutoLayoutCount++
		}
		if c := n.Constraints; c != nil && (complexConstraints[c.Vertical] || complexConstraints[c.Horizontal]) {
			m.ComplexConstraintCount++
		}

		name := strings.ToLower(n.Name)
		if strings.Contains(name, "form") {
			m.FormCount++
		}
		if strings.Contains(name, "input") {
			m.InputCount++
		}
	})

	return m
}

// StructureLevel classifies the raw structural metrics against fixed
// thresholds, evaluated complex-first.
func StructureLevel(m Metrics) Level {
	switch {
	case m.ElementCount > 50 || m.ComponentCount > 10 || m.MaxDepth > 8:
		return LevelComplex
	case m.ElementCount > 20 || m.ComponentCount > 5 || m.MaxDepth > 5:
		return LevelMedium
	default:
		return LevelSimple
	}
}

// ClassifyDataFlow maps form and input counts to a state-management pattern.
func ClassifyDataFlow(m Metrics) DataFlow {
	switch {
	case m.FormCount > 2 || m.InputCount > 8:
		return DataFlow{Level: LevelComplex, Pattern: "global-state-management"}
	case m.FormCount > 0 || m.InputCount > 3:
		return DataFlow{Level: LevelMedium, Pattern: "component-state"}
	default:
		return DataFlow{Level: LevelSimple, Pattern: "local-state"}
	}
}

// recommend produces advisory notes derived from the classification outcomes.
func recommend(r *Report) []string {
	recs := []string{}

	if r.DataFlow.Pattern == "global-state-management" {
		recs = append(recs, fmt.Sprintf(
			"design implies shared state across %d form(s) and %d input(s); plan a global state container",
			r.Metrics.FormCount, r.Metrics.InputCount))
	}
	if r.Structure == LevelComplex {
		recs = append(recs, "deep or wide node hierarchy; split screens into smaller component trees before implementation")
	}
	if r.Metrics.ComplexConstraintCount > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d node(s) use multi-anchor or centered constraints; verify responsive behavior at multiple breakpoints",
			r.Metrics.ComplexConstraintCount))
	}
	if r.Metrics.ComponentCount == 0 && r.Metrics.ElementCount > 20 {
		recs = append(recs, "no components defined despite many elements; extract reusable components early")
	}

	return recs
}
