package hierarchy

import (
	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

// parentResolver is one lookup strategy for a parent reference. Strategies
// are tried in order until one finds a node.
type parentResolver func(ref formTypes.ParentRef) (node *Node, found bool)

func resolveByID(byID map[string]*Node) parentResolver {
	return func(ref formTypes.ParentRef) (*Node, bool) {
		if ref.ParentQuestionID == "" {
			return nil, false
		}
		node, found := byID[ref.ParentQuestionID]
		return node, found
	}
}

func resolveByPosition(byPosition map[int]*Node) parentResolver {
	return func(ref formTypes.ParentRef) (*Node, bool) {
		if ref.ParentPosition == nil {
			return nil, false
		}
		node, found := byPosition[*ref.ParentPosition]
		return node, found
	}
}

func resolveParent(resolvers []parentResolver, ref formTypes.ParentRef) *Node {
	for _, resolve := range resolvers {
		if node, found := resolve(ref); found {
			return node
		}
	}
	return nil
}
