// Package generator synthesizes transaction fixtures for manually
// exercising the analysis pipeline: a body of unremarkable background
// transfers plus a configurable number of each embedded pattern (cycle,
// smurfing ring, layered shell chain), so a generated file is known to
// trigger every detector at least once.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Row is one synthetic transaction, shaped to match the parser's canonical
// columns directly.
type Row struct {
	TransactionID string
	Sender        string
	Receiver      string
	Amount        float64
	Timestamp     time.Time
}

// Generator produces synthetic transaction datasets with known embedded
// mule patterns.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumAccounts <= 0 {
		cfg.NumAccounts = DefaultConfig().NumAccounts
	}
	if cfg.NumBackgroundTx <= 0 {
		cfg.NumBackgroundTx = DefaultConfig().NumBackgroundTx
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Generator{cfg: cfg, rand: rand.New(rand.NewSource(cfg.Seed))}
}

// Generate synthesizes the full row set. It respects context cancellation
// between each pattern-generation phase.
func (g *Generator) Generate(ctx context.Context) ([]Row, error) {
	var rows []Row
	now := time.Now().UTC().Truncate(time.Second)
	seq := 0
	nextID := func() string {
		seq++
		return fmt.Sprintf("TX-%07d", seq)
	}

	accounts := make([]string, g.cfg.NumAccounts)
	for i := range accounts {
		accounts[i] = fmt.Sprintf("ACC-%05d", i+1)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows = append(rows, g.backgroundNoise(accounts, now, nextID)...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := 0; i < g.cfg.NumCycles; i++ {
		rows = append(rows, g.cycle(fmt.Sprintf("CYC%d", i), now, nextID)...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := 0; i < g.cfg.NumSmurfingRings; i++ {
		rows = append(rows, g.smurfingRing(fmt.Sprintf("SMF%d", i), now, nextID)...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := 0; i < g.cfg.NumShellChains; i++ {
		rows = append(rows, g.shellChain(fmt.Sprintf("SHL%d", i), now, nextID)...)
	}

	return rows, nil
}

// backgroundNoise produces ordinary, unremarkable transfers among the
// account pool: random pairs, random amounts, spread over the last 90 days.
func (g *Generator) backgroundNoise(accounts []string, now time.Time, nextID func() string) []Row {
	rows := make([]Row, 0, g.cfg.NumBackgroundTx)
	for i := 0; i < g.cfg.NumBackgroundTx; i++ {
		senderIdx := g.rand.Intn(len(accounts))
		receiverIdx := g.rand.Intn(len(accounts))
		if senderIdx == receiverIdx {
			receiverIdx = (receiverIdx + 1) % len(accounts)
		}
		ts := now.Add(-time.Duration(g.rand.Intn(90*24)) * time.Hour)
		rows = append(rows, Row{
			TransactionID: nextID(),
			Sender:        accounts[senderIdx],
			Receiver:      accounts[receiverIdx],
			Amount:        roundCents(g.rand.Float64()*900 + 10),
			Timestamp:     ts,
		})
	}
	return rows
}

// cycle emits a closed loop of 3-5 accounts, each sending to the next at
// hourly intervals, guaranteed to be caught by the cycle detector.
func (g *Generator) cycle(prefix string, now time.Time, nextID func() string) []Row {
	length := 3 + g.rand.Intn(3) // 3..5
	members := make([]string, length)
	for i := range members {
		members[i] = prefix + fmt.Sprintf("-ACC%d", i)
	}
	start := now.Add(-time.Duration(g.rand.Intn(30*24)) * time.Hour)

	rows := make([]Row, 0, length)
	for i := 0; i < length; i++ {
		sender := members[i]
		receiver := members[(i+1)%length]
		rows = append(rows, Row{
			TransactionID: nextID(),
			Sender:        sender,
			Receiver:      receiver,
			Amount:        roundCents(g.rand.Float64()*400 + 400),
			Timestamp:     start.Add(time.Duration(i) * time.Hour),
		})
	}
	return rows
}

// smurfingRing emits 10-14 distinct payers all sending to one hub within a
// few hours, well inside the smurfing window.
func (g *Generator) smurfingRing(prefix string, now time.Time, nextID func() string) []Row {
	hub := prefix + "-HUB"
	count := 10 + g.rand.Intn(5)
	start := now.Add(-time.Duration(g.rand.Intn(30*24)) * time.Hour)

	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		payer := fmt.Sprintf("%s-PAYER%d", prefix, i)
		rows = append(rows, Row{
			TransactionID: nextID(),
			Sender:        payer,
			Receiver:      hub,
			Amount:        roundCents(g.rand.Float64()*90 + 10),
			Timestamp:     start.Add(time.Duration(i) * time.Hour),
		})
	}
	return rows
}

// shellChain emits a pass-through path of 5 accounts where the three
// intermediates touch nothing else, guaranteed to clear the degree ceiling.
func (g *Generator) shellChain(prefix string, now time.Time, nextID func() string) []Row {
	path := []string{
		prefix + "-ORIGIN",
		prefix + "-HOP1",
		prefix + "-HOP2",
		prefix + "-HOP3",
		prefix + "-DEST",
	}
	start := now.Add(-time.Duration(g.rand.Intn(30*24)) * time.Hour)

	rows := make([]Row, 0, len(path)-1)
	amount := roundCents(g.rand.Float64()*500 + 500)
	for i := 0; i < len(path)-1; i++ {
		rows = append(rows, Row{
			TransactionID: nextID(),
			Sender:        path[i],
			Receiver:      path[i+1],
			Amount:        amount, // pass-through chains tend to move the same amount along
			Timestamp:     start.Add(time.Duration(i) * 2 * time.Hour),
		})
	}
	return rows
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
