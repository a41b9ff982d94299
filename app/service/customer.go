package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
)

var (
	ErrAddressNotFound  = errors.New("address not found")
	ErrAddressForbidden = errors.New("address does not belong to this customer")
)

// ProfileUpdate carries the optional fields of a profile update. Nil fields
// are left untouched.
type ProfileUpdate struct {
	FullName *string
	Phone    *string
	Gender   *int64
	Birthday *time.Time
}

// CustomerService manages customer profiles and their delivery addresses.
type CustomerService struct {
	users       userRepository
	addresses   *repository.UserAddressRepository
	permissions *repository.UserPermissionRepository
}

func NewCustomerService(
	users userRepository,
	addresses *repository.UserAddressRepository,
	permissions *repository.UserPermissionRepository,
) *CustomerService {
	return &CustomerService{users: users, addresses: addresses, permissions: permissions}
}

func (s *CustomerService) GetProfile(ctx context.Context, userID uint64) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *CustomerService) UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate) (*entity.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = sql.NullString{String: *update.FullName, Valid: *update.FullName != ""}
	}
	if update.Phone != nil {
		user.Phone = sql.NullString{String: *update.Phone, Valid: *update.Phone != ""}
	}
	if update.Gender != nil {
		user.Gender = sql.NullInt64{Int64: *update.Gender, Valid: true}
	}
	if update.Birthday != nil {
		user.Birthday = sql.NullTime{Time: *update.Birthday, Valid: true}
	}

	if err = s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetPermissions returns the back-office permission row created at signup.
func (s *CustomerService) GetPermissions(ctx context.Context, userID uint64) (*entity.UserPermission, error) {
	permission, err := s.permissions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, ErrUserNotFound
	}
	return permission, nil
}

func (s *CustomerService) ListAddresses(ctx context.Context, userID uint64) ([]*entity.UserAddress, error) {
	return s.addresses.ListByUserID(ctx, userID)
}

func (s *CustomerService) CreateAddress(ctx context.Context, address *entity.UserAddress) (*entity.UserAddress, error) {
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *CustomerService) UpdateAddress(ctx context.Context, userID uint64, address *entity.UserAddress) (*entity.UserAddress, error) {
	existing, err := s.addresses.FindByID(ctx, address.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrAddressNotFound
	}
	if existing.UserID != userID {
		return nil, ErrAddressForbidden
	}

	address.UserID = userID
	if err = s.addresses.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *CustomerService) DeleteAddress(ctx context.Context, userID, addressID uint64) error {
	existing, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAddressNotFound
	}
	if existing.UserID != userID {
		return ErrAddressForbidden
	}
	return s.addresses.Delete(ctx, addressID)
}

// CustomerExists backs the existence-guard middleware on customer routes.
func (s *CustomerService) CustomerExists(ctx context.Context, id uint64) (bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
