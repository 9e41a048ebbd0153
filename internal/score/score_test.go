package score

import (
	"testing"
	"time"

	"github.com/vanshika/muletrace/internal/config"
	"github.com/vanshika/muletrace/internal/domain"
	"github.com/vanshika/muletrace/internal/graph"
)

func mkTx(id, sender, receiver string, amount float64, ts time.Time) domain.Transaction {
	return domain.Transaction{ID: id, Sender: sender, Receiver: receiver, Amount: amount, Timestamp: ts}
}

func TestCompute_CyclePatternScore(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	rows := []domain.Transaction{
		mkTx("TX1", "A", "B", 500, now),
		mkTx("TX2", "B", "C", 480, now.Add(time.Hour)),
		mkTx("TX3", "C", "A", 480, now.Add(2*time.Hour)),
	}
	g := graph.Build(rows)
	cfg := config.DefaultAnalysisConfig()

	rawRings := []domain.RawRing{
		{
			Members:     []string{"A", "B", "C"},
			PatternType: domain.PatternCycle,
			Labels: map[string][]string{
				"A": {"cycle_length_3"}, "B": {"cycle_length_3"}, "C": {"cycle_length_3"},
			},
		},
	}

	scores := Compute(g, rows, rawRings, cfg)
	if scores["A"].Score != 40.0 {
		t.Errorf("expected A score 40.0, got %v", scores["A"].Score)
	}
	if scores["B"].Score != 40.0 || scores["C"].Score != 40.0 {
		t.Errorf("expected B and C score 40.0, got %v %v", scores["B"].Score, scores["C"].Score)
	}
}

func TestCompute_MerchantDamperReducesScore(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// 60 payments of 100.00 from 3 recurring payers, evenly spaced 24h apart
	// (~59 day lifetime): zero dispersion in both amount and spacing, well
	// past the merchant lifetime floor, and a flat degree distribution (M
	// touches only 3 counterparties) so the centrality-anomaly signal stays
	// silent and only the merchant damper is exercised.
	var rows []domain.Transaction
	for i := 0; i < 60; i++ {
		rows = append(rows, mkTx(
			"MX"+itoa(i), "P"+itoa(i%3), "M", 100.00,
			base.Add(time.Duration(i)*24*time.Hour),
		))
	}

	g := graph.Build(rows)

	rawRings := []domain.RawRing{
		{
			Members:     []string{"M", "P0", "P1", "P2"},
			PatternType: domain.PatternSmurfing,
			Labels: map[string][]string{
				"M": {domain.LabelFanInSmurfing}, "P0": {domain.LabelFanInSmurfing},
				"P1": {domain.LabelFanInSmurfing}, "P2": {domain.LabelFanInSmurfing},
			},
		},
	}

	scores := Compute(g, rows, rawRings, cfg)
	if scores["M"].Score != 5.0 {
		t.Errorf("expected merchant-damped score 5.0 (30 - 25), got %v", scores["M"].Score)
	}
}

func TestCompute_VelocityBurstAppliesAccountWide(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// 10 transfers within nine hours to only 2 distinct counterparties,
	// so the account-wide centrality signal (which reacts to degree, not
	// transaction count) stays silent and only velocity fires.
	var rows []domain.Transaction
	for i := 0; i < 10; i++ {
		rows = append(rows, mkTx("TX"+itoa(i), "A", "C"+itoa(i%2), 10, base.Add(time.Duration(i)*time.Hour)))
	}
	g := graph.Build(rows)

	scores := Compute(g, rows, nil, cfg)
	acct := scores["A"]
	if acct.Score != 20.0 {
		t.Errorf("expected velocity-only score 20.0, got %v", acct.Score)
	}
	found := false
	for _, l := range acct.Labels {
		if l == domain.LabelHighVelocity {
			found = true
		}
	}
	if !found {
		t.Errorf("expected high_velocity label, got %v", acct.Labels)
	}
}

func TestRingRiskScore_MeanOfMembers(t *testing.T) {
	got := RingRiskScore([]float64{40.0, 40.0, 40.0})
	if got != 40.0 {
		t.Errorf("expected 40.0, got %v", got)
	}
	got = RingRiskScore([]float64{30.0, 5.0})
	if got != 17.5 {
		t.Errorf("expected 17.5, got %v", got)
	}
}

func TestRound1_HalfAwayFromZero(t *testing.T) {
	cases := map[float64]float64{
		40.26:  40.3,
		40.24:  40.2,
		-40.26: -40.3,
		0.0:    0.0,
		65.0:   65.0,
	}
	for in, want := range cases {
		if got := round1(in); got != want {
			t.Errorf("round1(%v) = %v, want %v", in, got, want)
		}
	}
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return string(rune('0'+i/10)) + string(rune('0'+i%10))
}
