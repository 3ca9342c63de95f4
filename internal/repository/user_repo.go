package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybnb/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;size:150;not null;uniqueIndex"`
	Email        string    `gorm:"column:email;size:254"`
	FirstName    string    `gorm:"column:first_name;size:150"`
	LastName     string    `gorm:"column:last_name;size:150"`
	PasswordHash string    `gorm:"column:password_hash;size:255"`
	IsStaff      bool      `gorm:"column:is_staff"`
	IsSuperuser  bool      `gorm:"column:is_superuser"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		IsStaff:      m.IsStaff,
		IsSuperuser:  m.IsSuperuser,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     strings.TrimSpace(u.Username),
		Email:        strings.TrimSpace(strings.ToLower(u.Email)),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateError(err)
	}
	*u = *toDomainUser(m)
	return nil
}

// GetOrCreate looks u up by username and inserts it when missing. The
// returned user is the stored row; created reports whether it was inserted.
func (r *UserRepository) GetOrCreate(ctx context.Context, u *domain.User) (*domain.User, bool, error) {
	existing, err := r.GetByUsername(ctx, u.Username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	created := *u
	if err := r.Create(ctx, &created); err != nil {
		return nil, false, err
	}
	return &created, true, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("username = ?", strings.TrimSpace(username)).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Count(&cnt).Error
	return cnt, err
}

// Delete removes the user together with everything hanging off it: the
// listings they host (and those listings' bookings and reviews) and the
// bookings and reviews they made as a guest.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hosted := tx.Model(&listingModel{}).Select("id").Where("host_id = ?", id)
		guestBookings := tx.Model(&bookingModel{}).Select("id").Where("guest_id = ?", id)

		if err := tx.Where("guest_id = ? OR listing_id IN (?) OR booking_id IN (?)", id, hosted, guestBookings).
			Delete(&reviewModel{}).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("guest_id = ? OR listing_id IN (?)", id, hosted).
			Delete(&bookingModel{}).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("host_id = ?", id).Delete(&listingModel{}).Error; err != nil {
			return translateError(err)
		}
		res := tx.Delete(&userModel{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
