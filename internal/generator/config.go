package generator

// Config drives the synthetic transaction fixture generator.
type Config struct {
	NumAccounts      int
	NumBackgroundTx  int
	NumCycles        int
	NumSmurfingRings int
	NumShellChains   int
	Seed             int64
}

// DefaultConfig returns baseline settings producing a modest fixture with a
// handful of each embedded pattern sitting inside plain background noise.
func DefaultConfig() Config {
	return Config{
		NumAccounts:      200,
		NumBackgroundTx:  2000,
		NumCycles:        2,
		NumSmurfingRings: 2,
		NumShellChains:   2,
		Seed:             42,
	}
}
