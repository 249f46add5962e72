package impact

var levelPhrases = map[Level]string{
	HighPositive:     "Strong positive sentiment detected",
	ModeratePositive: "Moderate positive sentiment detected",
	SlightlyPositive: "Slightly positive sentiment detected",
	Neutral:          "Balanced sentiment detected",
	SlightlyNegative: "Slightly negative sentiment detected",
	ModerateNegative: "Moderate negative sentiment detected",
	HighNegative:     "Strong negative sentiment detected",
}

var horizonPhrases = map[Horizon]string{
	Immediate: "immediate market reaction likely",
	ShortTerm: "market reaction likely over the coming days and weeks",
	LongTerm:  "impact likely to play out over the longer term",
}

var neutralHorizonPhrases = map[Horizon]string{
	Immediate: "little immediate directional movement expected",
	ShortTerm: "market likely to stay range-bound in the near term",
	LongTerm:  "no clear long-term directional bias",
}

// Describe renders the impact description for a level and horizon.
func Describe(level Level, horizon Horizon) string {
	phrases := horizonPhrases
	if level == Neutral {
		phrases = neutralHorizonPhrases
	}
	return levelPhrases[level] + "; " + phrases[horizon]
}
