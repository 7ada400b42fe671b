package domain

import (
	"github.com/montanaflynn/stats"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
)

// AddRating counts one more vote of the given weight and returns the new
// buckets with the weighted average rounded to one decimal.
func AddRating(buckets []entity.RatingBucket, weight int) ([]entity.RatingBucket, float64) {
	if len(buckets) == 0 {
		buckets = entity.EmptyRating()
	}

	out := make([]entity.RatingBucket, len(buckets))
	copy(out, buckets)

	found := false
	for i := range out {
		if out[i].Weight == weight {
			out[i].Count++
			found = true
		}
	}
	if !found {
		out = append(out, entity.RatingBucket{Weight: weight, Count: 1})
	}

	return out, RatingAverage(out)
}

// RatingAverage is sum(weight*count)/sum(count), 0 when there are no votes.
func RatingAverage(buckets []entity.RatingBucket) float64 {
	var total, votes float64
	for _, b := range buckets {
		total += float64(b.Weight * b.Count)
		votes += float64(b.Count)
	}
	if votes == 0 {
		return 0
	}

	avg, err := stats.Round(total/votes, 1)
	if err != nil {
		return total / votes
	}
	return avg
}
