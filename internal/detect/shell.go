package detect

import (
	"context"

	"github.com/vanshika/muletrace/internal/config"
	"github.com/vanshika/muletrace/internal/domain"
	"github.com/vanshika/muletrace/internal/graph"
)

// ShellJob returns the detector pool Job that finds layered pass-through
// chains: simple paths of length in [cfg.ShellMinHops, cfg.ShellMaxHops]
// whose intermediate nodes all have undirected degree at most
// cfg.ShellMaxDegree.
func ShellJob(g *graph.Graph, cfg config.AnalysisConfig) Job {
	return Job{
		Name: "shell",
		Run: func(ctx context.Context) ([]domain.RawRing, error) {
			return detectShells(ctx, g, cfg)
		},
	}
}

func detectShells(ctx context.Context, g *graph.Graph, cfg config.AnalysisConfig) ([]domain.RawRing, error) {
	degree := g.DegreeMap()
	seen := make(map[string]struct{})
	var rings []domain.RawRing

	var path []string
	onPath := make(map[string]bool)

	var walk func(current string)
	walk = func(current string) {
		if ctx.Err() != nil {
			return
		}
		hops := len(path) - 1 // path includes the start node
		if hops >= cfg.ShellMinHops {
			recordShellChain(seen, &rings, path)
		}
		if hops == cfg.ShellMaxHops {
			return
		}
		// An intermediate node (every node but the start) must stay at or
		// below the degree ceiling for the walk to continue through it.
		if len(path) > 1 && degree[current] > cfg.ShellMaxDegree {
			return
		}

		for _, next := range g.Successors(current) {
			if onPath[next] {
				continue
			}
			path = append(path, next)
			onPath[next] = true
			walk(next)
			onPath[next] = false
			path = path[:len(path)-1]
		}
	}

	for _, start := range g.NodeIDs() {
		if ctx.Err() != nil {
			break
		}
		path = []string{start}
		onPath[start] = true
		walk(start)
		onPath[start] = false
		path = nil
	}

	return rings, nil
}

func recordShellChain(seen map[string]struct{}, rings *[]domain.RawRing, path []string) {
	members := append([]string(nil), path...)
	key := shellKey(members)
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}

	labels := make(map[string][]string, len(members))
	for _, m := range members {
		labels[m] = []string{domain.LabelLayeredShellChain}
	}

	*rings = append(*rings, domain.RawRing{
		Members:     members,
		PatternType: domain.PatternShell,
		Labels:      labels,
	})
}

// shellKey identifies a shell chain by its ordered path: unlike smurfing
// (where the pattern is direction-agnostic over a set of counterparties),
// the route through a chain matters, so distinct orderings of the same
// members are distinct findings.
func shellKey(path []string) string {
	key := ""
	for _, id := range path {
		key += id + ">"
	}
	return key
}
