package response

import (
	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
)

type SellerSummary struct {
	ID        string           `json:"_id"`
	UUID      string           `json:"_uuid"`
	FullName  string           `json:"fullName"`
	Email     string           `json:"email"`
	Status    string           `json:"isSeller"`
	Store     entity.StoreInfo `json:"storeInfos"`
	TotalSold int64            `json:"totalSold"`
}

func SellerToSummary(u *entity.User) SellerSummary {
	s := SellerSummary{
		ID:        u.ID.String(),
		UUID:      u.UUID,
		FullName:  u.FullName,
		Email:     u.Email,
		Store:     u.Store,
		TotalSold: u.TotalSold,
	}
	if u.SellerStatus != nil {
		s.Status = string(*u.SellerStatus)
	}
	return s
}

func SellersToSummary(users []*entity.User) []SellerSummary {
	out := make([]SellerSummary, len(users))
	for i, u := range users {
		out[i] = SellerToSummary(u)
	}
	return out
}

type AdminDashboardResponse struct {
	QueueProducts  []QueueProductResponse `json:"queueProducts"`
	TotalQueue     int64                  `json:"countQueue"`
	PendingSellers []SellerSummary        `json:"sellers"`
	TotalPending   int64                  `json:"countPendingSellers"`
}

type AdminOverviewResponse struct {
	TopSellers      []SellerSummary     `json:"topSellers"`
	TopSoldProducts []query.SoldProduct `json:"topSoldProducts"`
}
