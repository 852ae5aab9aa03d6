package figmacontext

import (
	"strings"

	"github.com/hellenic-development/figma-context/pkg/nodes"
)

// SemanticRegion tags a container node with a detected UI intent.
type SemanticRegion struct {
	NodeID     string  `json:"nodeId"`
	Name       string  `json:"name"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// intentRules is the ordered intent-detection table: first matching rule wins,
// no match emits nothing. Kept as data so rules can be tested and extended
// without touching the detection loop.
type intentRule struct {
	substrings []string
	intent     string
	confidence float64
}

var intentRules = []intentRule{
	{substrings: []string{"login", "signin"}, intent: "login_form", confidence: 0.8},
	{substrings: []string{"nav", "header"}, intent: "navigation", confidence: 0.7},
	{substrings: []string{"button", "cta"}, intent: "call_to_action", confidence: 0.6},
}

// DetectIntents matches every FRAME node that has children against the intent
// rule table, lowercased name, in document order.
func DetectIntents(parsed []nodes.Node) []SemanticRegion {
	regions := []SemanticRegion{}

	for _, n := range parsed {
		if n.Type != "FRAME" || n.ChildCount == 0 {
			continue
		}
		name := strings.ToLower(n.Name)
		for _, rule := range intentRules {
			if matchesAny(name, rule.substrings) {
				regions = append(regions, SemanticRegion{
					NodeID:     n.ID,
					Name:       n.Name,
					Intent:     rule.intent,
					Confidence: rule.confidence,
				})
				break
			}
		}
	}

	return regions
}

func matchesAny(name string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}
