// Package signal derives lightweight trading signals from article text:
// ticker-symbol extraction and lexicon-based sentiment classification.
// Both are intentionally simple heuristics; they will miss real tickers and
// misread tone, and that tradeoff is accepted. Callers must not assume the
// output is financially accurate.
package signal

import (
	"regexp"

	"stockai-news/internal/domain/entity"
)

// tickerPattern matches runs of 1-5 consecutive uppercase Latin letters as a
// proxy for stock ticker symbols.
var tickerPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// tickerStoplist holds common uppercase English words that the pattern would
// otherwise report as symbols.
var tickerStoplist = map[string]struct{}{
	"THE": {}, "AND": {}, "OR": {}, "FOR": {}, "WITH": {}, "FROM": {},
	"THIS": {}, "THAT": {}, "WILL": {}, "CAN": {}, "ARE": {}, "WAS": {},
	"HAS": {}, "HAD": {}, "NOT": {}, "BUT": {}, "YOU": {}, "ALL": {},
	"HER": {}, "HIS": {}, "THEY": {}, "SAY": {}, "SHE": {}, "ONE": {},
	"WOULD": {}, "THERE": {}, "THEIR": {}, "WHAT": {}, "SOUP": {}, "OUT": {},
	"ABOUT": {}, "MANY": {}, "THEM": {}, "THEN": {}, "THESE": {}, "SOME": {},
	"MAKE": {}, "LIKE": {}, "INTO": {}, "HIM": {}, "TIME": {}, "TWO": {},
	"MORE": {}, "GO": {}, "NO": {}, "WAY": {}, "COULD": {}, "MY": {},
	"THAN": {}, "FIRST": {}, "BEEN": {}, "CALL": {}, "WHO": {}, "ITS": {},
	"NOW": {}, "FIND": {}, "LONG": {}, "DOWN": {}, "DAY": {}, "DID": {},
	"GET": {}, "COME": {}, "MADE": {}, "MAY": {}, "PART": {},
}

// ExtractTickers scans text for candidate stock ticker symbols.
// Matches are returned in order of first occurrence, capped at
// entity.MaxTickers. Single-letter matches and stoplisted words are dropped;
// repeated mentions are kept as found, without deduplication.
func ExtractTickers(text string) []string {
	matches := tickerPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tickers := make([]string, 0, entity.MaxTickers)
	for _, m := range matches {
		if _, stop := tickerStoplist[m]; stop {
			continue
		}
		if len(m) < 2 || len(m) > 5 {
			continue
		}
		tickers = append(tickers, m)
		if len(tickers) == entity.MaxTickers {
			break
		}
	}

	if len(tickers) == 0 {
		return nil
	}
	return tickers
}
