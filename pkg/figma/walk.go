package figma

import (
	"fmt"
	"math"
)

// Visit is the callback invoked by Walk for every node, together with the
// node's depth (the document root is depth 0).
type Visit func(node *Node, depth int)

// Walk traverses the node tree in document order (pre-order, children in
// z-order) and calls fn for every node. The traversal uses an explicit stack
// instead of recursion so that arbitrarily deep documents cannot exhaust the
// call stack.
func Walk(root *Node, fn Visit) {
	if root == nil {
		return
	}

	type frame struct {
		node  *Node
		depth int
	}

	stack := []frame{{node: root, depth: 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(top.node, top.depth)

		// Push children in reverse so the first child is visited first.
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &top.node.Children[i], depth: top.depth + 1})
		}
	}
}

// ColorToHex converts a Figma RGBA color (with 0-1 float values) to standard
// lowercase hexadecimal format (#rrggbb). Returns "#000000" if the color is nil.
func ColorToHex(color *Color) string {
	if color == nil {
		return "#000000"
	}

	r := int(math.Round(color.R * 255))
	g := int(math.Round(color.G * 255))
	b := int(math.Round(color.B * 255))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
