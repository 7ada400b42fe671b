package request

type CreateReviewRequest struct {
	ProductID string  `json:"productID" validate:"required,uuid"`
	Rating    int     `json:"ratingWeight" validate:"required,min=1,max=5"`
	Comment   *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}
