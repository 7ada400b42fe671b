package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/dto/response"
	"github.com/mroy35034/woo-com-server/internal/templates"
	"github.com/mroy35034/woo-com-server/pkg/apperr"
	"github.com/mroy35034/woo-com-server/pkg/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	Dashboard(ctx context.Context, req *request.PaginatedRequest) (*response.AdminDashboardResponse, error)
	// TakeProduct promotes a queued listing into the catalog as a verified draft.
	TakeProduct(ctx context.Context, adminID uuid.UUID, listingID string) (*entity.Product, error)
	VerifySeller(ctx context.Context, sellerID uuid.UUID) error
	Overview(ctx context.Context) (*response.AdminOverviewResponse, error)
}

type adminService struct {
	repo *repository.Repository
	mail mailer.Sender
	log  *zap.Logger
	now  clock
}

func NewAdminService(repo *repository.Repository, mail mailer.Sender, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		mail: mail,
		log:  log.With(zap.String("service", "admin")),
		now:  time.Now,
	}
}

func (s *adminService) Dashboard(ctx context.Context, req *request.PaginatedRequest) (*response.AdminDashboardResponse, error) {
	queued, err := s.repo.Queue.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	countQueue, err := s.repo.Queue.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	sellers, err := s.repo.User.FindPendingSellers(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	countSellers, err := s.repo.User.CountPendingSellers(ctx)
	if err != nil {
		return nil, err
	}

	queue := make([]response.QueueProductResponse, len(queued))
	for i, q := range queued {
		queue[i] = response.QueueToResponse(q)
	}

	return &response.AdminDashboardResponse{
		QueueProducts:  queue,
		TotalQueue:     countQueue,
		PendingSellers: response.SellersToSummary(sellers),
		TotalPending:   countSellers,
	}, nil
}

func (s *adminService) TakeProduct(ctx context.Context, adminID uuid.UUID, listingID string) (*entity.Product, error) {
	admin, err := s.repo.User.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.IsAdmin() {
		return nil, apperr.Forbidden("Forbidden access !")
	}

	now := s.now()
	product, err := s.repo.Queue.Promote(ctx, listingID, func(item *entity.QueueProduct) (*entity.Product, error) {
		p := item.Document
		p.ListingID = item.ListingID
		p.SaveAs = entity.SaveAsDraft
		p.Status = entity.StatusInactive
		p.IsVerified = true
		p.VerifyStatus = &entity.VerifyStatus{
			VerifiedBy: string(admin.Role),
			Email:      admin.Email,
			VerifiedAt: now,
		}
		p.UpdatedAt = now
		return &p, nil
	})

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperr.NotFound("Sorry product not found !")
	case errors.Is(err, repository.ErrConflict):
		return nil, apperr.Conflict("Product %s already taken !", listingID)
	case err != nil:
		return nil, fmt.Errorf("take product: %w", err)
	}

	s.log.Info("Product taken",
		zap.String("listing_id", listingID),
		zap.String("admin_id", adminID.String()),
	)
	return product, nil
}

// VerifySeller approves a pending seller and tells them by email. A failed
// email does not undo the approval.
func (s *adminService) VerifySeller(ctx context.Context, sellerID uuid.UUID) error {
	seller, err := s.repo.User.FindByID(ctx, sellerID)
	if err != nil {
		return err
	}
	if seller == nil || seller.Role != entity.RoleSeller {
		return apperr.NotFound("Seller not found!")
	}

	if err := s.repo.User.UpdateSellerStatus(ctx, seller.ID, entity.SellerPending, entity.SellerFulfilled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.BadRequest("Seller account is not pending !")
		}
		return err
	}

	s.log.Info("Seller verified", zap.String("seller_id", seller.ID.String()))

	html, err := templates.SellerApproved(seller.FullName, seller.Store.Name)
	if err == nil {
		err = s.mail.Send(ctx, seller.Email, "Your seller account is verified", html)
	}
	if err != nil {
		s.log.Error("Failed to send seller approval email",
			zap.Error(err),
			zap.String("seller_id", seller.ID.String()),
		)
	}

	return nil
}

func (s *adminService) Overview(ctx context.Context) (*response.AdminOverviewResponse, error) {
	sellers, err := s.repo.User.FindTopSellers(ctx, dashboardLimit)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Product.FindTopSold(ctx, nil, dashboardLimit)
	if err != nil {
		return nil, err
	}

	return &response.AdminOverviewResponse{
		TopSellers:      response.SellersToSummary(sellers),
		TopSoldProducts: products,
	}, nil
}
