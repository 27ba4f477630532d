// Package family implements the Family Partitioner: an
// undirected projection of the canonical edge set, connected-component
// enumeration, and descending-size family-id assignment. Grounded on
// query/component_query.go's BFS connected-component enumeration over
// the GEDCOM individual graph, generalized here from FAMC/FAMS edges to
// canonical riftehr edges.
package family

import (
	"sort"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// Assignment is one (family_id, patient_id) output row.
type Assignment struct {
	FamilyID  int
	PatientID string
}

// Stats summarizes a Partition run.
type Stats struct {
	Nodes          int
	Components     int
	SingletonsSkipped int
	Assigned       int
}

// Partition builds the undirected simple graph with an edge whenever any
// canonical directed edge exists between two patients, finds connected
// components via BFS, and assigns family ids 0, 1, 2, ... in descending
// order of component size. Singleton components are omitted from the
// output.
func Partition(edges []model.CanonicalEdge) ([]Assignment, Stats) {
	adj := make(map[string]map[string]bool)
	addNode := func(n string) {
		if adj[n] == nil {
			adj[n] = make(map[string]bool)
		}
	}
	for _, e := range edges {
		addNode(e.Src)
		addNode(e.Dst)
		adj[e.Src][e.Dst] = true
		adj[e.Dst][e.Src] = true
	}

	stats := Stats{Nodes: len(adj)}

	visited := make(map[string]bool, len(adj))
	var components [][]string
	for node := range adj {
		if visited[node] {
			continue
		}
		comp := bfs(adj, node, visited)
		components = append(components, comp)
	}
	stats.Components = len(components)

	sort.SliceStable(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return smallestOf(components[i]) < smallestOf(components[j])
	})

	var out []Assignment
	familyID := 0
	for _, comp := range components {
		if len(comp) < 2 {
			stats.SingletonsSkipped++
			continue
		}
		sort.Strings(comp)
		for _, patient := range comp {
			out = append(out, Assignment{FamilyID: familyID, PatientID: patient})
			stats.Assigned++
		}
		familyID++
	}

	return out, stats
}

// bfs explores the connected component containing start, marking every
// visited node in visited.
func bfs(adj map[string]map[string]bool, start string, visited map[string]bool) []string {
	queue := []string{start}
	visited[start] = true
	var comp []string
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		comp = append(comp, n)
		for neighbor := range adj[n] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}
	return comp
}

// smallestOf breaks ties between equal-size components deterministically
// by lexicographically smallest member, so repeated runs over the same
// input produce the same family-id assignment.
func smallestOf(comp []string) string {
	min := comp[0]
	for _, n := range comp[1:] {
		if n < min {
			min = n
		}
	}
	return min
}
