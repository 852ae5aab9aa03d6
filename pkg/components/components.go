// Package components maps component and instance nodes into a component
// inventory with variant grouping and instance counts.
package components

import (
	"strings"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

// Component is one reusable component discovered in the document, keyed by its
// base name. Variant components ("Size=Large, State=Hover") collapse onto one
// entry with their properties listed as variants.
type Component struct {
	Name          string   `json:"name"`
	Key           string   `json:"key,omitempty"`
	Description   string   `json:"description,omitempty"`
	Variants      []string `json:"variants,omitempty"`
	InstanceCount int      `json:"instanceCount"`
}

// Mapper is the default component mapper collaborator.
type Mapper struct{}

// MapComponents walks the tree collecting COMPONENT definitions and INSTANCE
// usages, enriched with the file-level component metadata when available.
func (Mapper) MapComponents(root *figma.Node, defs map[string]figma.Component) (map[string]Component, error) {
	out := make(map[string]Component)
	idToName := make(map[string]string)

	figma.Walk(root, func(n *figma.Node, _ int) {
		switch n.Type {
		case "COMPONENT":
			base, variant := splitVariantName(n.Name)
			entry := out[base]
			entry.Name = base
			if variant != "" {
				entry.Variants = append(entry.Variants, variant)
			}
			if def, ok := defs[n.ID]; ok {
				entry.Key = def.Key
				entry.Description = def.Description
			}
			out[base] = entry
			idToName[n.ID] = base

		case "INSTANCE":
			base := n.Name
			if mapped, ok := idToName[n.ComponentID]; ok {
				base = mapped
			} else if def, ok := defs[n.ComponentID]; ok {
				base, _ = splitVariantName(def.Name)
			} else {
				base, _ = splitVariantName(base)
			}
			entry := out[base]
			entry.Name = base
			entry.InstanceCount++
			out[base] = entry
		}
	})

	return out, nil
}

// splitVariantName separates a Figma variant name ("State=Hover, Size=Large")
// from a plain component name. Variant components live inside a component set
// whose name is the base; for standalone names the base is the name itself.
func splitVariantName(name string) (base, variant string) {
	if !strings.Contains(name, "=") {
		return name, ""
	}
	// Property lists are the whole name; the base is unknown at node level,
	// so group them under the normalized property signature.
	parts := strings.Split(name, ",")
	props := make([]string, 0, len(parts))
	for _, part := range parts {
		if key, _, ok := strings.Cut(strings.TrimSpace(part), "="); ok {
			props = append(props, strings.TrimSpace(key))
		}
	}
	return strings.Join(props, "/"), strings.TrimSpace(name)
}
