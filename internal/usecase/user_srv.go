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
	"github.com/mroy35034/woo-com-server/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	FetchAuthUser(ctx context.Context, userID uuid.UUID) (*response.UserData, error)

	ListAddresses(ctx context.Context, userID uuid.UUID) ([]response.AddressResponse, error)
	AddAddress(ctx context.Context, userID uuid.UUID, req *request.AddressRequest) (*response.AddressResponse, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req *request.AddressRequest) (*response.AddressResponse, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
	SelectDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  clock
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
		now:  time.Now,
	}
}

func (s *userService) FetchAuthUser(ctx context.Context, userID uuid.UUID) (*response.UserData, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found!")
	}

	data, err := projectUser(ctx, s.repo, user)
	if err != nil {
		return nil, err
	}

	return &data, nil
}

func (s *userService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]response.AddressResponse, error) {
	addresses, err := s.repo.Address.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return response.AddressesToResponse(addresses), nil
}

func (s *userService) AddAddress(ctx context.Context, userID uuid.UUID, req *request.AddressRequest) (*response.AddressResponse, error) {
	address := &entity.Address{
		Base:   entity.NewBase(s.now()),
		UserID: userID,
	}
	applyAddress(address, req)

	if err := s.repo.Address.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	s.log.Info("Address added",
		zap.String("user_id", userID.String()),
		zap.String("address_id", address.ID.String()),
		zap.Bool("default", address.IsDefault),
	)

	res := response.AddressToResponse(address)
	return &res, nil
}

func (s *userService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req *request.AddressRequest) (*response.AddressResponse, error) {
	address, err := s.repo.Address.FindByID(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, apperr.NotFound("Address not found!")
	}

	applyAddress(address, req)
	address.UpdatedAt = s.now()

	if err := s.repo.Address.Update(ctx, address); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Address not found!")
		}
		return nil, err
	}

	res := response.AddressToResponse(address)
	return &res, nil
}

// DeleteAddress removes the address. A removed default is not replaced.
func (s *userService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.repo.Address.Delete(ctx, userID, addressID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Address not found!")
		}
		return err
	}

	s.log.Info("Address deleted",
		zap.String("user_id", userID.String()),
		zap.String("address_id", addressID.String()),
	)
	return nil
}

func (s *userService) SelectDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.repo.Address.SetDefault(ctx, userID, addressID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Address not found!")
		}
		return err
	}
	return nil
}

func applyAddress(a *entity.Address, req *request.AddressRequest) {
	a.Name = req.Name
	a.Division = req.Division
	a.City = req.City
	a.Area = req.Area
	a.AreaType = req.AreaType
	a.Landmark = req.Landmark
	a.PhoneNumber = req.PhoneNumber
	a.PostalCode = req.PostalCode
}
