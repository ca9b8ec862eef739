package search

import "github.com/kailas-cloud/parksite/internal/domain/search/result"

// rank moves results whose title contains term ahead of the rest,
// keeping relative order within each group.
func rank(results []result.Result, term string) []result.Result {
	ranked := make([]result.Result, 0, len(results))
	var rest []result.Result
	for i := range results {
		if results[i].TitleContains(term) {
			ranked = append(ranked, results[i])
		} else {
			rest = append(rest, results[i])
		}
	}
	return append(ranked, rest...)
}
