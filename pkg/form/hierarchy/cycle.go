package hierarchy

// wouldCreateCycle reports whether attaching child under parent would make
// parent its own descendant, i.e. whether parent already sits somewhere in
// the child's subtree. Breadth-first with a visited set, so adversarial
// inputs that already contain shared or cyclic links cannot loop forever.
func wouldCreateCycle(parent *Node, child *Node) bool {
	if parent == nil || child == nil {
		return false
	}

	visited := map[*Node]bool{child: true}
	queue := []*Node{child}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.ID == parent.ID {
			return true
		}
		for _, next := range current.Children {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return false
}
