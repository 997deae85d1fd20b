// internal/session/stars.go

package session

// starThresholds are the ascending cumulative-score cutoffs for 1, 2 and 3
// stars. Scores below the first cutoff earn no star.
var starThresholds = [...]int{1000, 10000, 20000}

// Stars maps a cumulative score to a 0–3 star rating.
func Stars(score int) int {
	stars := 0
	for _, threshold := range starThresholds {
		if score >= threshold {
			stars++
		}
	}
	return stars
}
