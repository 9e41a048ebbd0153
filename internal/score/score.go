// Package score turns raw detector findings into bounded per-account
// suspicion scores and per-ring risk scores.
package score

import (
	"math"

	"github.com/vanshika/muletrace/internal/config"
	"github.com/vanshika/muletrace/internal/domain"
	"github.com/vanshika/muletrace/internal/graph"
)

// AccountScore is one account's final score and the labels that produced it.
type AccountScore struct {
	Score  float64
	Labels []string // insertion-ordered, deduplicated
}

// Compute combines pattern membership (from rawRings), velocity, and
// centrality signals into a bounded score per account, then applies the
// merchant false-positive damper. It returns a score for every node in g,
// not only the ones that appear in rawRings — velocity and centrality are
// evaluated account-wide.
func Compute(g *graph.Graph, rows []domain.Transaction, rawRings []domain.RawRing, cfg config.AnalysisConfig) map[string]AccountScore {
	profiles := buildProfiles(rows)
	degree := g.DegreeMap()
	meanDeg, stdDeg := meanAndPopStdDev(degreeValues(degree))

	scores := make(map[string]*accumulator)
	ensure := func(id string) *accumulator {
		acc, ok := scores[id]
		if !ok {
			acc = &accumulator{}
			scores[id] = acc
		}
		return acc
	}

	for _, id := range g.NodeIDs() {
		ensure(id)
	}

	patternWeights := map[domain.PatternType]float64{
		domain.PatternCycle:    cfg.ScoreCycle,
		domain.PatternSmurfing: cfg.ScoreSmurfing,
		domain.PatternShell:    cfg.ScoreShell,
	}
	awarded := make(map[string]map[domain.PatternType]bool)
	for _, ring := range rawRings {
		for _, member := range ring.Members {
			acc := ensure(member)
			if awarded[member] == nil {
				awarded[member] = make(map[domain.PatternType]bool)
			}
			if !awarded[member][ring.PatternType] {
				awarded[member][ring.PatternType] = true
				acc.add(patternWeights[ring.PatternType])
			}
			for _, label := range ring.Labels[member] {
				acc.label(label)
			}
		}
	}

	for id, profile := range profiles {
		acc := ensure(id)
		if hasVelocityBurst(profile.timeline, cfg) {
			acc.add(cfg.ScoreVelocity)
			acc.label(domain.LabelHighVelocity)
		}
		if stdDeg > 0 && float64(degree[id]) >= meanDeg+2*stdDeg {
			acc.add(cfg.ScoreCentrality)
			acc.label(domain.LabelCentralityAnomaly)
		}
	}

	for id, profile := range profiles {
		acc := scores[id]
		if acc == nil || acc.raw <= 0 {
			continue // damper only ever applies to accounts with a positive raw score
		}
		if isLikelyMerchant(profile, cfg) {
			acc.add(cfg.ScoreFPMerchant)
		}
	}

	out := make(map[string]AccountScore, len(scores))
	for id, acc := range scores {
		out[id] = AccountScore{
			Score:  clamp(round1(acc.raw), cfg.ScoreMin, cfg.ScoreMax),
			Labels: acc.labels,
		}
	}
	return out
}

type accumulator struct {
	raw    float64
	labels []string
	seen   map[string]bool
}

func (a *accumulator) add(delta float64) { a.raw += delta }

func (a *accumulator) label(l string) {
	if a.seen == nil {
		a.seen = make(map[string]bool)
	}
	if a.seen[l] {
		return
	}
	a.seen[l] = true
	a.labels = append(a.labels, l)
}

func degreeValues(degree map[string]int) []float64 {
	values := make([]float64, 0, len(degree))
	for _, d := range degree {
		values = append(values, float64(d))
	}
	return values
}

func meanAndPopStdDev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	stddev = math.Sqrt(sqDiff / float64(len(values)))
	return mean, stddev
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RingRiskScore computes the mean of the given member scores, rounded with
// the same half-away-from-zero rule used for account scores.
func RingRiskScore(memberScores []float64) float64 {
	if len(memberScores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range memberScores {
		sum += s
	}
	return round1(sum / float64(len(memberScores)))
}
