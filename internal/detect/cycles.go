package detect

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vanshika/muletrace/internal/config"
	"github.com/vanshika/muletrace/internal/domain"
	"github.com/vanshika/muletrace/internal/graph"
	"github.com/vanshika/muletrace/internal/metrics"
)

// workCapExceeded describes the enumeration hitting its safety bound.
// detectCycles never returns it: on reaching the cap it stops, logs and
// counts the abort, and returns the cycles already found.
type workCapExceeded struct{}

func (workCapExceeded) Error() string { return "cycle enumeration work cap exceeded" }

// CycleJob returns the detector pool Job that enumerates elementary
// directed cycles bounded to [cfg.MinCycleLength, cfg.MaxCycleLength].
func CycleJob(g *graph.Graph, cfg config.AnalysisConfig) Job {
	return Job{
		Name: "cycle",
		Run: func(ctx context.Context) ([]domain.RawRing, error) {
			return detectCycles(ctx, g, cfg)
		},
	}
}

func detectCycles(ctx context.Context, g *graph.Graph, cfg config.AnalysisConfig) ([]domain.RawRing, error) {
	seen := make(map[string]struct{})
	var rings []domain.RawRing
	work := 0
	aborted := false

	var path []string
	onPath := make(map[string]bool)

	var walk func(start, current string) bool // returns false to abort entirely
	walk = func(start, current string) bool {
		if ctx.Err() != nil {
			return false
		}
		work++
		if work > cfg.CycleEnumerationWorkCap {
			aborted = true
			return false
		}
		atMaxDepth := len(path) == cfg.MaxCycleLength

		for _, next := range g.Successors(current) {
			if next == start {
				if len(path) >= cfg.MinCycleLength {
					recordCycle(seen, &rings, path)
				}
				continue
			}
			if atMaxDepth {
				// closure against start was already checked above; no room
				// left to descend into another node without exceeding
				// MaxCycleLength.
				continue
			}
			if onPath[next] || next < start {
				// next < start: any cycle through `next` will be (and was, or
				// will be) discovered starting from `next` itself, since every
				// elementary cycle is rooted at its lexicographically smallest
				// member exactly once.
				continue
			}
			path = append(path, next)
			onPath[next] = true
			ok := walk(start, next)
			onPath[next] = false
			path = path[:len(path)-1]
			if !ok {
				return false
			}
		}
		return true
	}

	for _, start := range g.NodeIDs() {
		path = []string{start}
		onPath[start] = true
		ok := walk(start, start)
		onPath[start] = false
		path = nil
		if !ok {
			break
		}
	}

	if aborted {
		slog.Warn("cycle enumeration work cap reached; keeping cycles found so far",
			"work_cap", cfg.CycleEnumerationWorkCap, "cycles_found", len(rings))
		metrics.RecordDetectorAborted("cycle")
	}
	return rings, nil
}

func recordCycle(seen map[string]struct{}, rings *[]domain.RawRing, path []string) {
	canon := canonicalizeCycle(path)
	key := fmt.Sprintf("%v", canon)
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}

	label := "cycle_length_" + strconv.Itoa(len(canon))
	labels := make(map[string][]string, len(canon))
	for _, member := range canon {
		labels[member] = []string{label}
	}

	*rings = append(*rings, domain.RawRing{
		Members:     canon,
		PatternType: domain.PatternCycle,
		Labels:      labels,
	})
}

// canonicalizeCycle rotates the cycle to start at its lexicographically
// smallest member while preserving the traversal direction.
func canonicalizeCycle(path []string) []string {
	minIdx := 0
	for i, id := range path {
		if id < path[minIdx] {
			minIdx = i
		}
	}
	rotated := make([]string, len(path))
	for i := range path {
		rotated[i] = path[(minIdx+i)%len(path)]
	}
	return rotated
}
