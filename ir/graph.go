package ir

import "fmt"

// TopologicalOrder returns ids in a topological order consistent with succ,
// breaking ties by the order ids already appear in order (Kahn's algorithm,
// deterministic tie-break on iteration order as the corpus idiom requires
// for hashmap-backed adjacency — see design notes on determinism). Returns
// an error if succ describes a cycle.
func TopologicalOrder(order []string, succ map[string][]string) ([]string, error) {
	inDegree := make(map[string]int, len(order))
	for _, id := range order {
		inDegree[id] = 0
	}
	for _, dsts := range succ {
		for _, d := range dsts {
			inDegree[d]++
		}
	}

	queue := make([]string, 0, len(order))
	for _, id := range order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]string, 0, len(order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)
		for _, d := range succ[id] {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(result) != len(order) {
		return nil, fmt.Errorf("graph contains a cycle (topological sort visited %d of %d nodes)", len(result), len(order))
	}
	return result, nil
}

// TransitiveSuccessorCounts computes SC(v), the number of transitive
// successors of v, for every node in order, by reverse-topological
// accumulation: SC(v) = sum over direct successors w of (1 + SC(w)).
// Matches §4.3/§9: "computed once, at initialization ... Time is
// O(|V| + |E|)".
func TransitiveSuccessorCounts(order []string, succ map[string][]string) (map[string]int64, error) {
	topo, err := TopologicalOrder(order, succ)
	if err != nil {
		return nil, err
	}
	sc := make(map[string]int64, len(order))
	for i := len(topo) - 1; i >= 0; i-- {
		v := topo[i]
		var total int64
		for _, w := range succ[v] {
			total += 1 + sc[w]
		}
		sc[v] = total
	}
	return sc, nil
}
