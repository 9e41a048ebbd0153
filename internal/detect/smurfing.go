package detect

import (
	"context"
	"sort"
	"time"

	"github.com/vanshika/muletrace/internal/config"
	"github.com/vanshika/muletrace/internal/domain"
	"github.com/vanshika/muletrace/internal/graph"
)

// flow is one directed leg (counterparty, timestamp) on an account's
// incoming or outgoing stream, used by the sliding window below.
type flow struct {
	counterparty string
	at           time.Time
}

// SmurfingJob returns the detector pool Job that finds fan-in and fan-out
// bursts: an account touching at least cfg.SmurfingMinEndpoints distinct
// counterparties within a cfg.SmurfingWindowHours window.
func SmurfingJob(g *graph.Graph, cfg config.AnalysisConfig) Job {
	return Job{
		Name: "smurfing",
		Run: func(ctx context.Context) ([]domain.RawRing, error) {
			return detectSmurfing(ctx, g, cfg)
		},
	}
}

func detectSmurfing(ctx context.Context, g *graph.Graph, cfg config.AnalysisConfig) ([]domain.RawRing, error) {
	window := time.Duration(cfg.SmurfingWindowHours) * time.Hour
	var rings []domain.RawRing

	for _, account := range g.NodeIDs() {
		if ctx.Err() != nil {
			return rings, nil
		}

		if counterparties, ok := firstWindowMeetingThreshold(incomingFlows(g, account), window, cfg.SmurfingMinEndpoints); ok {
			rings = append(rings, buildSmurfingRing(account, counterparties, domain.LabelFanInSmurfing))
		}
		if counterparties, ok := firstWindowMeetingThreshold(outgoingFlows(g, account), window, cfg.SmurfingMinEndpoints); ok {
			rings = append(rings, buildSmurfingRing(account, counterparties, domain.LabelFanOutSmurfing))
		}
	}
	return rings, nil
}

func incomingFlows(g *graph.Graph, account string) []flow {
	var flows []flow
	for sender, edge := range g.IncomingEdges(account) {
		for _, p := range edge.Points {
			flows = append(flows, flow{counterparty: sender, at: p.Timestamp})
		}
	}
	sortFlows(flows)
	return flows
}

func outgoingFlows(g *graph.Graph, account string) []flow {
	var flows []flow
	byReceiver, ok := g.Edges[account]
	if !ok {
		return nil
	}
	for receiver, edge := range byReceiver {
		for _, p := range edge.Points {
			flows = append(flows, flow{counterparty: receiver, at: p.Timestamp})
		}
	}
	sortFlows(flows)
	return flows
}

// sortFlows orders by (timestamp, counterparty): timestamps alone are not a
// total order since same-day or same-instant transfers are common (§4.1's
// date-only timestamp layouts collapse to a single instant), so the
// counterparty id breaks ties deterministically.
func sortFlows(flows []flow) {
	sort.Slice(flows, func(i, j int) bool {
		if !flows[i].at.Equal(flows[j].at) {
			return flows[i].at.Before(flows[j].at)
		}
		return flows[i].counterparty < flows[j].counterparty
	})
}

// firstWindowMeetingThreshold two-pointer-scans the sorted flow stream and
// returns the distinct counterparties of the first window (by left edge)
// whose span is within `window` and that reaches `minEndpoints` distinct
// counterparties. A running multiset tracks counterparty multiplicity as
// the right pointer advances and the left pointer catches up.
func firstWindowMeetingThreshold(flows []flow, window time.Duration, minEndpoints int) ([]string, bool) {
	if len(flows) < minEndpoints {
		return nil, false
	}

	counts := make(map[string]int)
	left := 0
	for right := 0; right < len(flows); right++ {
		counts[flows[right].counterparty]++

		for flows[right].at.Sub(flows[left].at) > window {
			counts[flows[left].counterparty]--
			if counts[flows[left].counterparty] == 0 {
				delete(counts, flows[left].counterparty)
			}
			left++
		}

		if len(counts) >= minEndpoints {
			out := make([]string, 0, len(counts))
			for cp := range counts {
				out = append(out, cp)
			}
			sort.Strings(out)
			return out, true
		}
	}
	return nil, false
}

func buildSmurfingRing(hub string, counterparties []string, label string) domain.RawRing {
	members := make([]string, 0, len(counterparties)+1)
	members = append(members, hub)
	members = append(members, counterparties...)
	sort.Strings(members)

	labels := make(map[string][]string, len(members))
	for _, m := range members {
		labels[m] = []string{label}
	}

	return domain.RawRing{
		Members:     members,
		PatternType: domain.PatternSmurfing,
		Labels:      labels,
	}
}
