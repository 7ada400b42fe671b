package domain

import (
	"testing"

	"github.com/mroy35034/woo-com-server/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestAddRating(t *testing.T) {
	buckets, avg := AddRating(nil, 4)
	assert.Len(t, buckets, 5)
	assert.Equal(t, 4.0, avg)

	buckets, avg = AddRating(buckets, 5)
	assert.Equal(t, 4.5, avg)

	buckets, avg = AddRating(buckets, 5)
	assert.Equal(t, 4.7, avg)

	buckets, avg = AddRating(buckets, 1)
	assert.Equal(t, 3.8, avg)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 4, total)
}

func TestAddRatingDoesNotMutateInput(t *testing.T) {
	in := entity.EmptyRating()
	_, _ = AddRating(in, 3)

	for _, b := range in {
		assert.Zero(t, b.Count)
	}
}

func TestRatingAverage(t *testing.T) {
	tests := []struct {
		name    string
		buckets []entity.RatingBucket
		want    float64
	}{
		{"no votes", entity.EmptyRating(), 0},
		{"single weight", []entity.RatingBucket{{Weight: 2, Count: 3}}, 2},
		{"mixed", []entity.RatingBucket{{Weight: 1, Count: 1}, {Weight: 5, Count: 2}}, 3.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RatingAverage(tt.buckets))
		})
	}
}
