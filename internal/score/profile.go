package score

import (
	"math"
	"sort"
	"time"

	"github.com/vanshika/muletrace/internal/config"
	"github.com/vanshika/muletrace/internal/domain"
)

// accountProfile holds everything the scoring signals need about one
// account's incident activity, built once per Compute call.
type accountProfile struct {
	timeline []time.Time // every incident transaction's timestamp, sorted
	amounts  []float64   // every incident transaction's amount
}

func buildProfiles(rows []domain.Transaction) map[string]*accountProfile {
	profiles := make(map[string]*accountProfile)
	ensure := func(id string) *accountProfile {
		p, ok := profiles[id]
		if !ok {
			p = &accountProfile{}
			profiles[id] = p
		}
		return p
	}

	for _, tx := range rows {
		sender := ensure(tx.Sender)
		sender.timeline = append(sender.timeline, tx.Timestamp)
		sender.amounts = append(sender.amounts, tx.Amount)

		receiver := ensure(tx.Receiver)
		receiver.timeline = append(receiver.timeline, tx.Timestamp)
		receiver.amounts = append(receiver.amounts, tx.Amount)
	}

	for _, p := range profiles {
		sort.Slice(p.timeline, func(i, j int) bool { return p.timeline[i].Before(p.timeline[j]) })
	}
	return profiles
}

// hasVelocityBurst reports whether the account's timeline contains any
// window of cfg.VelocityWindowHours holding at least cfg.VelocityMinTx
// transactions.
func hasVelocityBurst(timeline []time.Time, cfg config.AnalysisConfig) bool {
	if len(timeline) < cfg.VelocityMinTx {
		return false
	}
	window := time.Duration(cfg.VelocityWindowHours) * time.Hour
	left := 0
	for right := 0; right < len(timeline); right++ {
		for timeline[right].Sub(timeline[left]) > window {
			left++
		}
		if right-left+1 >= cfg.VelocityMinTx {
			return true
		}
	}
	return false
}

// isLikelyMerchant classifies an account as a likely merchant when its
// lifetime, amount dispersion, and spacing dispersion all fall within the
// configured thresholds.
func isLikelyMerchant(p *accountProfile, cfg config.AnalysisConfig) bool {
	if len(p.timeline) < 2 {
		return false
	}
	lifetime := p.timeline[len(p.timeline)-1].Sub(p.timeline[0])
	if lifetime < time.Duration(cfg.MerchantMinLifetimeDays)*24*time.Hour {
		return false
	}

	amountCV, ok := coefficientOfVariation(p.amounts)
	if !ok || amountCV > cfg.MerchantAmountCVThreshold {
		return false
	}

	spacingCV, ok := coefficientOfVariation(interArrivalSeconds(p.timeline))
	if !ok || spacingCV > cfg.MerchantSpacingCVThreshold {
		return false
	}

	return true
}

func interArrivalSeconds(timeline []time.Time) []float64 {
	if len(timeline) < 2 {
		return nil
	}
	intervals := make([]float64, 0, len(timeline)-1)
	for i := 1; i < len(timeline); i++ {
		intervals = append(intervals, timeline[i].Sub(timeline[i-1]).Seconds())
	}
	return intervals
}

// coefficientOfVariation returns stddev/mean. Per spec, fewer than two data
// points or a zero mean both mean "not a merchant" rather than a division
// by zero, signaled by ok=false.
func coefficientOfVariation(values []float64) (cv float64, ok bool) {
	if len(values) < 2 {
		return 0, false
	}
	mean, stddev := meanAndPopStdDev(values)
	if mean == 0 {
		return 0, false
	}
	return math.Abs(stddev / mean), true
}
