package signal

import (
	"strings"

	"stockai-news/internal/domain/entity"
)

// Finance-flavored sentiment lexicons. Each entry counts at most once per
// text: the score is the number of lexicon words present as substrings, not
// the number of occurrences.
var (
	positiveLexicon = []string{
		"surge", "jump", "rise", "gain", "rally", "bullish", "positive",
		"growth", "profit", "earnings", "beat", "exceed", "strong", "upgrade",
		"buy", "outperform", "recovery", "bounce", "climb", "soar", "leap",
		"boost", "improve", "increase", "higher", "record", "breakthrough",
		"innovation", "success", "win", "victory",
	}

	negativeLexicon = []string{
		"fall", "drop", "decline", "plunge", "crash", "bearish", "negative",
		"loss", "miss", "disappoint", "weak", "downgrade", "sell",
		"underperform", "recession", "crisis", "risk", "danger", "threat",
		"worry", "concern", "fear", "panic", "sell-off", "correction",
		"bear market", "volatility", "uncertainty", "downturn", "slump", "dip",
	}
)

// Classify derives a sentiment label from text by counting which lexicon
// words appear in its lowercased form. A strict majority of positive hits
// yields positive, a strict majority of negative hits yields negative, and
// everything else, including the zero/zero tie, is neutral. There is no
// weighting or negation handling.
func Classify(text string) entity.Sentiment {
	lower := strings.ToLower(text)

	var positive, negative int
	for _, w := range positiveLexicon {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeLexicon {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return entity.SentimentPositive
	case negative > positive:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}
