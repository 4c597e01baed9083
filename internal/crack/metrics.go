package crack

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// wordsChecked counts dictionary words whose variants were all tried.
	wordsChecked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leetcrack_words_checked_total",
		Help: "Dictionary words fully checked",
	})

	candidatesTried = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leetcrack_candidates_tried_total",
		Help: "Candidate passwords passed to the verifier",
	})

	// variantsPerWord tracks how wide the substitution search is per word.
	variantsPerWord = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leetcrack_variants_per_word",
		Help:    "Number of generated variants per dictionary word",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~260k
	})

	searchResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leetcrack_search_results_total",
		Help: "Completed searches by outcome",
	}, []string{"status"}) // "found", "not_found" or "error"
)
