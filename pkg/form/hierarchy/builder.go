package hierarchy

import (
	"fmt"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

// Node is a question decorated with its resolved children. Collapsible is
// set on nodes that carry children so the builder UI can offer a toggle.
type Node struct {
	formTypes.Question
	Children    []*Node `json:"children"`
	Collapsible bool    `json:"collapsible,omitempty"`
}

// Build converts a flat, already filtered question list into a forest of
// root nodes with nested children. Parent references are resolved by id
// first, by positional index as fallback. Unresolvable references and
// attachments that would create a cycle degrade to root placement, so
// every input question appears exactly once in the output and the call
// never fails. Safe to run on every render of the builder UI.
func Build(questions []formTypes.Question) []*Node {
	nodes := make([]*Node, len(questions))
	byID := make(map[string]*Node, len(questions))
	byPosition := make(map[int]*Node, len(questions))

	for i, question := range questions {
		node := &Node{Question: question, Children: []*Node{}}
		if node.ID == "" {
			node.ID = placeholderID(i)
		}
		nodes[i] = node
		if _, taken := byID[node.ID]; !taken {
			byID[node.ID] = node
		}
		byPosition[i] = node
	}

	resolvers := []parentResolver{
		resolveByID(byID),
		resolveByPosition(byPosition),
	}

	roots := []*Node{}
	attached := map[*Node]bool{}

	for _, node := range nodes {
		if node.Condition == nil {
			roots = append(roots, node)
			continue
		}

		parent := resolveParent(resolvers, *node.Condition)
		if parent == nil {
			// dangling reference, keep the question visible as a root
			roots = append(roots, node)
			continue
		}

		if attached[node] || parent == node || wouldCreateCycle(parent, node) {
			roots = append(roots, node)
			continue
		}

		parent.Children = append(parent.Children, node)
		attached[node] = true
	}

	for _, node := range nodes {
		if len(node.Children) > 0 {
			node.Collapsible = true
		}
	}

	return roots
}

func placeholderID(position int) string {
	return fmt.Sprintf("temp-question-%d", position)
}
