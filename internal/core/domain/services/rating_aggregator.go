package services

// Rating history constants. A courier's reputation is computed over at most
// MaxRatingHistory real ratings; couriers with a short history are padded
// with synthetic ratings so the score neither collapses nor spikes on
// little data.
const (
	// MaxRatingHistory caps how many recent real ratings participate.
	MaxRatingHistory = 149

	// SmallHistoryLimit is the largest history still considered under-sampled.
	SmallHistoryLimit = 99

	// OptimisticPadCount synthetic top ratings are appended for
	// under-sampled couriers.
	OptimisticPadCount = 50

	// FullHistoryLength is the target combined length for couriers between
	// SmallHistoryLimit and MaxRatingHistory real ratings; the shortfall is
	// filled with the lowest rating.
	FullHistoryLength = 150

	optimisticRating = 5
	penaltyRating    = 1
)

// RatingAggregator computes a courier's smoothed, recency-weighted
// reputation score. It is a pure function of the rating history; fetching
// the history is the application layer's job.
type RatingAggregator struct{}

// NewRatingAggregator creates a RatingAggregator.
func NewRatingAggregator() RatingAggregator {
	return RatingAggregator{}
}

// WeightedRating computes the reputation score from a courier's real
// ratings ordered newest first (at most MaxRatingHistory entries; extra
// entries are ignored).
//
// The history is padded before weighing:
//   - up to SmallHistoryLimit real ratings: OptimisticPadCount ratings of 5
//     are appended, so new couriers start near the top instead of swinging
//     on their first few reviews
//   - between SmallHistoryLimit+1 and MaxRatingHistory: ratings of 1 fill
//     the list up to FullHistoryLength, penalising couriers that still lack
//     a complete history
//   - a full history gets no padding
//
// Weights run from the combined length N down to 1 in list order, so the
// newest real rating weighs the most and synthetic entries the least. The
// result is the weighted sum divided by the triangular number N(N+1)/2.
func (RatingAggregator) WeightedRating(ratings []int) float64 {
	real := ratings
	if len(real) > MaxRatingHistory {
		real = real[:MaxRatingHistory]
	}

	combined := make([]int, 0, FullHistoryLength)
	combined = append(combined, real...)

	switch l := len(real); {
	case l <= SmallHistoryLimit:
		for range OptimisticPadCount {
			combined = append(combined, optimisticRating)
		}
	case l < MaxRatingHistory:
		for range FullHistoryLength - l {
			combined = append(combined, penaltyRating)
		}
	}

	n := len(combined)
	if n == 0 {
		return 0
	}

	var weightedSum int
	for i, rating := range combined {
		weightedSum += rating * (n - i)
	}

	weightSum := float64(n) * float64(n+1) / 2
	return float64(weightedSum) / weightSum
}
