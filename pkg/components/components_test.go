package components

import (
	"testing"

	"github.com/hellenic-development/figma-context/pkg/figma"
)

func TestMapComponentsCollectsDefinitionsAndInstances(t *testing.T) {
	doc := &figma.Node{
		ID: "0", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "c1", Name: "Button", Type: "COMPONENT"},
			{ID: "i1", Name: "Button", Type: "INSTANCE", ComponentID: "c1"},
			{ID: "i2", Name: "Button", Type: "INSTANCE", ComponentID: "c1"},
			{ID: "c2", Name: "Card", Type: "COMPONENT"},
		},
	}
	defs := map[string]figma.Component{
		"c1": {Key: "key-button", Name: "Button", Description: "Primary action"},
	}

	out, err := (Mapper{}).MapComponents(doc, defs)
	if err != nil {
		t.Fatalf("MapComponents() error = %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("components = %v, want 2 entries", out)
	}

	button := out["Button"]
	if button.InstanceCount != 2 {
		t.Errorf("Button instances = %d, want 2", button.InstanceCount)
	}
	if button.Key != "key-button" || button.Description != "Primary action" {
		t.Errorf("Button metadata not enriched: %+v", button)
	}

	card := out["Card"]
	if card.Name != "Card" || card.InstanceCount != 0 {
		t.Errorf("Card entry wrong: %+v", card)
	}
}

func TestMapComponentsGroupsVariants(t *testing.T) {
	doc := &figma.Node{
		ID: "0", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "v1", Name: "State=Default, Size=Large", Type: "COMPONENT"},
			{ID: "v2", Name: "State=Hover, Size=Large", Type: "COMPONENT"},
		},
	}

	out, err := (Mapper{}).MapComponents(doc, nil)
	if err != nil {
		t.Fatalf("MapComponents() error = %v", err)
	}

	entry, ok := out["State/Size"]
	if !ok {
		t.Fatalf("variant group missing: %v", out)
	}
	if len(entry.Variants) != 2 {
		t.Errorf("variants = %v, want 2", entry.Variants)
	}
}
