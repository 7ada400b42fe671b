package response

import (
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"productID"`
	FullName  string    `json:"name"`
	Rating    int       `json:"ratingWeight"`
	Comment   *string   `json:"description,omitempty"`
	CreatedAt time.Time `json:"reviewAt"`
}

type RatingResponse struct {
	Rating        []entity.RatingBucket `json:"rating"`
	RatingAverage float64               `json:"ratingAverage"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		ProductID: review.ProductID.String(),
		FullName:  review.FullName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = ReviewToResponse(r)
	}
	return out
}
