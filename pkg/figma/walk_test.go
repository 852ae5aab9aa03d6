package figma

import (
	"reflect"
	"testing"
)

func TestWalkOrderAndDepth(t *testing.T) {
	root := &Node{
		ID: "0", Name: "Document", Type: "DOCUMENT",
		Children: []Node{
			{
				ID: "1", Name: "Page", Type: "CANVAS",
				Children: []Node{
					{ID: "1:1", Name: "Header", Type: "FRAME"},
					{ID: "1:2", Name: "Body", Type: "FRAME",
						Children: []Node{
							{ID: "1:2:1", Name: "Text", Type: "TEXT"},
						},
					},
				},
			},
			{ID: "2", Name: "Page 2", Type: "CANVAS"},
		},
	}

	var ids []string
	depths := map[string]int{}
	Walk(root, func(n *Node, depth int) {
		ids = append(ids, n.ID)
		depths[n.ID] = depth
	})

	// Pre-order, children in document order.
	want := []string{"0", "1", "1:1", "1:2", "1:2:1", "2"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Walk order = %v, want %v", ids, want)
	}

	if depths["0"] != 0 || depths["1"] != 1 || depths["1:2:1"] != 3 {
		t.Errorf("Walk depths wrong: %v", depths)
	}
}

func TestWalkNilRoot(t *testing.T) {
	called := false
	Walk(nil, func(n *Node, depth int) { called = true })
	if called {
		t.Error("Walk(nil) must not invoke the callback")
	}
}

func TestWalkDeepTree(t *testing.T) {
	// A chain far deeper than any recursive traversal could take.
	const depth = 200000
	root := &Node{ID: "n0", Type: "FRAME"}
	current := root
	for i := 1; i < depth; i++ {
		current.Children = []Node{{ID: "n", Type: "FRAME"}}
		current = &current.Children[0]
	}

	count := 0
	maxDepth := 0
	Walk(root, func(n *Node, d int) {
		count++
		if d > maxDepth {
			maxDepth = d
		}
	})

	if count != depth {
		t.Errorf("visited %d nodes, want %d", count, depth)
	}
	if maxDepth != depth-1 {
		t.Errorf("max depth = %d, want %d", maxDepth, depth-1)
	}
}

func TestColorToHex(t *testing.T) {
	tests := []struct {
		name  string
		color *Color
		want  string
	}{
		{"red", &Color{R: 1, G: 0, B: 0, A: 1}, "#ff0000"},
		{"white", &Color{R: 1, G: 1, B: 1, A: 1}, "#ffffff"},
		{"black", &Color{R: 0, G: 0, B: 0, A: 1}, "#000000"},
		{"rounding", &Color{R: 0.5, G: 0.25, B: 0.75, A: 1}, "#8040bf"},
		{"nil color", nil, "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorToHex(tt.color); got != tt.want {
				t.Errorf("ColorToHex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaintVisibility(t *testing.T) {
	f := false
	tr := true

	if !(Paint{}).IsVisible() {
		t.Error("absent visible flag must mean visible")
	}
	if (Paint{Visible: &f}).IsVisible() {
		t.Error("explicit false must hide the paint")
	}
	if !(Paint{Visible: &tr}).IsVisible() {
		t.Error("explicit true must be visible")
	}

	if got := (Paint{}).EffectiveOpacity(); got != 1 {
		t.Errorf("default opacity = %v, want 1", got)
	}
	half := 0.5
	if got := (Paint{Opacity: &half}).EffectiveOpacity(); got != 0.5 {
		t.Errorf("opacity = %v, want 0.5", got)
	}
}
