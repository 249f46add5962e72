package lexicon

import "sync"

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the built-in English financial lexicon. It is built on first use
// and shared afterwards; the returned value must not be modified.
func Default() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = New(DefaultEntries())
	})
	return defaultLex, defaultErr
}

// DefaultEntries lists the built-in terms. Inflections are spelled out because the
// analyzer matches whole tokens without stemming.
func DefaultEntries() []Entry {
	var entries []Entry
	add := func(c Category, weight float64, terms ...string) {
		for _, t := range terms {
			entries = append(entries, Entry{Term: t, Weight: weight, Category: c})
		}
	}

	// strong positive
	add(CategoryPositive, 0.95, "record high", "all-time high", "record highs", "all-time highs")
	add(CategoryPositive, 0.9, "surge", "surges", "surged", "surging", "soar", "soars", "soared", "soaring",
		"bullish", "new high", "new highs")
	add(CategoryPositive, 0.85, "rally", "rallies", "rallied", "rallying", "earnings beat", "beat estimates")
	add(CategoryPositive, 0.8, "jump", "jumps", "jumped", "jumping", "outperform", "outperforms", "outperformed",
		"robust")
	add(CategoryPositive, 0.75, "beat", "beats", "exceed", "exceeds", "exceeded", "surpass", "surpasses",
		"surpassed", "optimistic", "optimism", "revenue growth", "rebound", "rebounds", "rebounded")
	add(CategoryPositive, 0.7, "strong", "stronger", "great", "upgrade", "upgrades", "upgraded", "uptrend")
	// moderate positive
	add(CategoryPositive, 0.65, "gain", "gains", "gained", "favorable", "favourable", "recovery", "boost",
		"boosts", "boosted", "breakout", "profitable")
	add(CategoryPositive, 0.6, "rise", "rises", "rose", "rising", "risen", "growth", "good", "positive",
		"healthy", "solid", "profit", "profits", "upbeat", "recover", "recovered", "accelerate", "accelerated",
		"strengthen", "strengthened", "climb", "climbs", "climbed")
	add(CategoryPositive, 0.55, "grow", "grows", "grew", "growing", "expand", "expands", "expanded",
		"expansion", "momentum", "improve", "improves", "improved", "improvement", "upside")
	add(CategoryPositive, 0.5, "increase", "increases", "increased", "higher", "advance", "advances",
		"advanced", "inflow", "inflows")
	add(CategoryPositive, 0.4, "dividend", "buy", "buying")

	// strong negative
	add(CategoryNegative, -0.95, "crash", "crashes", "crashed", "collapse", "collapses", "collapsed",
		"record low", "all-time low", "record lows", "all-time lows")
	add(CategoryNegative, -0.9, "plunge", "plunges", "plunged", "plunging", "bearish", "crisis", "fraud",
		"scam", "new low", "new lows")
	add(CategoryNegative, -0.85, "tumble", "tumbles", "tumbled", "slump", "slumps", "slumped", "recession",
		"earnings miss")
	add(CategoryNegative, -0.8, "underperform", "underperforms", "underperformed")
	add(CategoryNegative, -0.75, "miss", "misses", "missed", "disappoint", "disappoints", "disappointed",
		"disappointing", "poor", "pessimistic", "pessimism", "fall short", "revenue decline", "contraction",
		"selloff", "sell-off")
	add(CategoryNegative, -0.7, "weak", "weaker", "downtrend", "slowdown", "deteriorate", "deteriorated",
		"deteriorating", "downgrade", "downgrades", "downgraded", "default", "sink", "sinks", "sank")
	// moderate negative
	add(CategoryNegative, -0.65, "decline", "declines", "declined", "declining", "drop", "drops", "dropped",
		"dropping", "loss", "losses", "unfavorable", "unfavourable", "weakness")
	add(CategoryNegative, -0.6, "fall", "falls", "fell", "falling", "fallen", "negative", "bad", "deficit",
		"worry", "worries", "worried", "weaken", "weakened", "slide", "slides", "slid")
	add(CategoryNegative, -0.55, "concern", "concerns", "uncertainty")
	add(CategoryNegative, -0.5, "volatile", "correction", "investigation", "outflow", "outflows")
	add(CategoryNegative, -0.45, "risk", "risks", "volatility", "lower", "sell")
	add(CategoryNegative, -0.4, "selling")

	add(CategoryIntensifier, 0, "very", "extremely", "highly", "significantly", "substantially",
		"dramatically", "sharply", "strongly", "massively", "hugely", "steeply", "really")
	add(CategoryNegator, 0, "not", "no", "never", "neither", "nor", "none", "nothing", "without", "hardly",
		"barely", "cannot", "can't", "don't", "doesn't", "didn't", "isn't", "wasn't", "aren't", "weren't",
		"won't", "wouldn't", "shouldn't", "couldn't")
	add(CategoryQuestionMarker, 0, "how", "what", "why", "where", "who", "whom", "whose", "will", "would",
		"could", "should", "does", "did")

	return entries
}
