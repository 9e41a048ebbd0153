// Package report assembles the final Report from raw detector findings and
// per-account scores: it canonicalizes and deduplicates rings, assigns
// stable ids, joins accounts to rings, and applies the score>0 filter.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vanshika/muletrace/internal/domain"
	"github.com/vanshika/muletrace/internal/score"
)

// Build assembles the final Report. rawRings should already contain every
// detector's findings, in any order; canonicalization and ring-id
// assignment re-derive the fixed cycle → smurfing → shell ordering
// internally so the result is independent of detector execution order.
func Build(nodeIDs []string, rawRings []domain.RawRing, scores map[string]score.AccountScore, processingSeconds float64) domain.Report {
	rings := canonicalizeRings(rawRings, scores)

	accountRing := make(map[string]string)
	for _, ring := range rings {
		for _, member := range ring.Members {
			if _, ok := accountRing[member]; !ok || ring.ID < accountRing[member] {
				accountRing[member] = ring.ID
			}
		}
	}

	suspicious := []domain.SuspiciousAccount{}
	for id := range scores {
		acct := scores[id]
		if acct.Score <= 0 {
			continue
		}
		labels := dedupLabels(acct.Labels)

		var ringID *string
		if rid, ok := accountRing[id]; ok {
			r := rid
			ringID = &r
		}

		suspicious = append(suspicious, domain.SuspiciousAccount{
			AccountID:        id,
			SuspicionScore:   acct.Score,
			DetectedPatterns: labels,
			RingID:           ringID,
		})
	}

	sort.Slice(suspicious, func(i, j int) bool {
		if suspicious[i].SuspicionScore != suspicious[j].SuspicionScore {
			return suspicious[i].SuspicionScore > suspicious[j].SuspicionScore
		}
		return suspicious[i].AccountID < suspicious[j].AccountID
	})

	sort.Slice(rings, func(i, j int) bool { return rings[i].ID < rings[j].ID })

	return domain.Report{
		SuspiciousAccounts: suspicious,
		FraudRings:         rings,
		Summary: domain.Summary{
			TotalAccountsAnalyzed:     len(nodeIDs),
			SuspiciousAccountsFlagged: len(suspicious),
			FraudRingsDetected:        len(rings),
			ProcessingTimeSeconds:     round3(processingSeconds),
		},
		Transactions: []domain.Transaction{},
	}
}

// canonicalizeRings deduplicates raw findings into final Rings and assigns
// ring_id in the fixed cycle → smurfing → shell order, then by canonical
// tuple sort within each pattern bucket.
func canonicalizeRings(rawRings []domain.RawRing, scores map[string]score.AccountScore) []domain.Ring {
	buckets := map[domain.PatternType][]domain.RawRing{
		domain.PatternCycle:    nil,
		domain.PatternSmurfing: nil,
		domain.PatternShell:    nil,
	}
	seen := make(map[string]bool)
	for _, r := range rawRings {
		key := canonicalKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		buckets[r.PatternType] = append(buckets[r.PatternType], r)
	}

	order := []domain.PatternType{domain.PatternCycle, domain.PatternSmurfing, domain.PatternShell}

	rings := []domain.Ring{}
	n := 0
	for _, pt := range order {
		bucket := buckets[pt]
		sort.Slice(bucket, func(i, j int) bool { return canonicalKey(bucket[i]) < canonicalKey(bucket[j]) })

		for _, raw := range bucket {
			n++

			members := append([]string(nil), raw.Members...)
			memberScores := make([]float64, 0, len(members))
			for _, m := range members {
				if s, ok := scores[m]; ok {
					memberScores = append(memberScores, s.Score)
				}
			}

			rings = append(rings, domain.Ring{
				ID:          fmt.Sprintf("RING_%03d", n),
				Members:     members,
				PatternType: pt,
				RiskScore:   score.RingRiskScore(memberScores),
				MemberCount: len(members),
			})
		}
	}
	return rings
}

// canonicalKey identifies a raw ring's deduplication identity: for cycles,
// the already rotation-normalized member tuple; for smurfing and shell, the
// unordered member set plus pattern type.
func canonicalKey(r domain.RawRing) string {
	if r.PatternType == domain.PatternCycle {
		return string(r.PatternType) + ":" + strings.Join(r.Members, ">")
	}
	members := append([]string(nil), r.Members...)
	sort.Strings(members)
	return string(r.PatternType) + ":" + strings.Join(members, ",")
}

func dedupLabels(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := []string{}
	for _, l := range labels {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
