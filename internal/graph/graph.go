// Package graph builds the in-memory directed transaction graph the
// pattern detectors operate on. It replaces the teacher's Neo4j-backed
// client: there is no persistent store in this pipeline, only a per-request
// graph that is built, read, and discarded within a single Analyze call.
package graph

import (
	"sort"
	"time"

	"github.com/vanshika/muletrace/internal/domain"
)

// Edge aggregates every transaction observed from one account to another.
type Edge struct {
	Count  int
	Sum    float64
	Points []Point
}

// Point is one (timestamp, amount) observation on an edge's timeline.
type Point struct {
	Timestamp time.Time
	Amount    float64
}

// Graph is the directed, aggregated transaction multigraph for one request.
// It is built once and never mutated again.
type Graph struct {
	Nodes map[string]struct{}
	Edges map[string]map[string]*Edge // Edges[sender][receiver]

	out      map[string]map[string]struct{} // distinct out-neighbors
	in       map[string]map[string]struct{} // distinct in-neighbors
	revEdges map[string]map[string]*Edge    // revEdges[receiver][sender], same Edge pointers as Edges
}

// Build folds a transaction table into a Graph with a single linear pass.
func Build(rows []domain.Transaction) *Graph {
	g := &Graph{
		Nodes:    make(map[string]struct{}),
		Edges:    make(map[string]map[string]*Edge),
		out:      make(map[string]map[string]struct{}),
		in:       make(map[string]map[string]struct{}),
		revEdges: make(map[string]map[string]*Edge),
	}

	for _, tx := range rows {
		g.addNode(tx.Sender)
		g.addNode(tx.Receiver)

		byReceiver, ok := g.Edges[tx.Sender]
		if !ok {
			byReceiver = make(map[string]*Edge)
			g.Edges[tx.Sender] = byReceiver
		}
		edge, ok := byReceiver[tx.Receiver]
		if !ok {
			edge = &Edge{}
			byReceiver[tx.Receiver] = edge

			bySender, ok := g.revEdges[tx.Receiver]
			if !ok {
				bySender = make(map[string]*Edge)
				g.revEdges[tx.Receiver] = bySender
			}
			bySender[tx.Sender] = edge
		}
		edge.Count++
		edge.Sum += tx.Amount
		edge.Points = append(edge.Points, Point{Timestamp: tx.Timestamp, Amount: tx.Amount})

		g.addNeighbor(g.out, tx.Sender, tx.Receiver)
		g.addNeighbor(g.in, tx.Receiver, tx.Sender)
	}

	return g
}

func (g *Graph) addNode(id string) {
	if _, ok := g.Nodes[id]; !ok {
		g.Nodes[id] = struct{}{}
	}
}

func (g *Graph) addNeighbor(index map[string]map[string]struct{}, from, to string) {
	set, ok := index[from]
	if !ok {
		set = make(map[string]struct{})
		index[from] = set
	}
	set[to] = struct{}{}
}

// Successors returns the distinct accounts `id` has sent money to.
func (g *Graph) Successors(id string) []string {
	return keys(g.out[id])
}

// OutDegree returns the number of distinct accounts `id` has sent to.
func (g *Graph) OutDegree(id string) int {
	return len(g.out[id])
}

// IncomingEdges returns, for account `id`, the map of sender -> Edge for
// every counterparty that has sent it money. Local to `id`'s in-degree,
// not a full scan of the graph.
func (g *Graph) IncomingEdges(id string) map[string]*Edge {
	return g.revEdges[id]
}

// NodeIDs returns every account id in the graph, sorted for deterministic
// iteration order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DegreeMap returns, for every node, the count of distinct neighbors
// considering both directions combined: a counterparty reachable via both
// an inbound and an outbound edge counts once.
func (g *Graph) DegreeMap() map[string]int {
	degree := make(map[string]int, len(g.Nodes))
	for id := range g.Nodes {
		combined := make(map[string]struct{}, len(g.out[id])+len(g.in[id]))
		for n := range g.out[id] {
			combined[n] = struct{}{}
		}
		for n := range g.in[id] {
			combined[n] = struct{}{}
		}
		degree[id] = len(combined)
	}
	return degree
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
