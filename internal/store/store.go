package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sciequip-backend/internal/model"
)

// Sentinel errors for create-time validation. NotFound on lookups is not an
// error: Get* methods return a nil pointer instead.
var (
	ErrUnknownUser      = errors.New("booking references an unknown user")
	ErrUnknownEquipment = errors.New("booking references unknown equipment")
	ErrInvalidStatus    = errors.New("unknown booking status")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	GetUser(ctx context.Context, id string) (*model.User, error)
	GetEquipment(ctx context.Context, id string) (*model.Equipment, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	ListEquipment(ctx context.Context) ([]model.Equipment, error)
	ListBookings(ctx context.Context, userID string) ([]model.Booking, error)
	ListUsageLogs(ctx context.Context) ([]model.UsageLog, error)
	ListUsageLogsForEquipment(ctx context.Context, equipmentID string) ([]model.UsageLog, error)
	ListLabs(ctx context.Context) ([]model.Lab, error)

	HomeConfig(ctx context.Context) (*model.HomePageConfig, error)
	IncrementVisitorCount(ctx context.Context) (int64, error)

	CreateBooking(ctx context.Context, b *model.Booking) error
	CreateUsageLog(ctx context.Context, l *model.UsageLog) error

	ListInventorySessions(ctx context.Context, year int) ([]model.InventorySession, error)
	CreateInventorySession(ctx context.Context, s *model.InventorySession) error
	UpdateInventorySession(ctx context.Context, id string, patch model.InventorySession) (bool, error)
	DeleteInventorySession(ctx context.Context, id string) (int64, error)

	SaveSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %q: %w", id, err)
	}
	return &u, nil
}

func (s *gormStore) GetEquipment(ctx context.Context, id string) (*model.Equipment, error) {
	var e model.Equipment
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equipment %q: %w", id, err)
	}
	return &e, nil
}

func (s *gormStore) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %q: %w", id, err)
	}
	return &b, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) ListEquipment(ctx context.Context) ([]model.Equipment, error) {
	var items []model.Equipment
	if err := s.db.WithContext(ctx).Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListBookings returns all bookings, or only those created by userID when it
// is non-empty. Insertion order.
func (s *gormStore) ListBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	q := s.db.WithContext(ctx).Order("created_at")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var bookings []model.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *gormStore) ListUsageLogs(ctx context.Context) ([]model.UsageLog, error) {
	var logs []model.UsageLog
	if err := s.db.WithContext(ctx).Order("created_at").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *gormStore) ListUsageLogsForEquipment(ctx context.Context, equipmentID string) ([]model.UsageLog, error) {
	var logs []model.UsageLog
	if err := s.db.WithContext(ctx).Where("equipment_id = ?", equipmentID).Order("created_at").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *gormStore) ListLabs(ctx context.Context) ([]model.Lab, error) {
	var labs []model.Lab
	if err := s.db.WithContext(ctx).Order("created_at").Find(&labs).Error; err != nil {
		return nil, err
	}
	return labs, nil
}

func (s *gormStore) HomeConfig(ctx context.Context) (*model.HomePageConfig, error) {
	var cfg model.HomePageConfig
	err := s.db.WithContext(ctx).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch home config: %w", err)
	}
	return &cfg, nil
}

// IncrementVisitorCount bumps the visitor counter in a single UPDATE so
// concurrent home requests never lose an increment, and returns the new value.
func (s *gormStore) IncrementVisitorCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.HomePageConfig{}).
			Where("id = ?", 1).
			UpdateColumn("visitor_count", gorm.Expr("visitor_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.HomePageConfig{}).
			Where("id = ?", 1).
			Pluck("visitor_count", &count).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment visitor count: %w", err)
	}
	return count, nil
}

// CreateBooking validates the user and equipment references, fills defaults
// and appends the booking. The status sequence itself is not enforced.
func (s *gormStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = model.BookingPending
	}
	if !b.Status.Known() {
		return ErrInvalidStatus
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.User{}).Where("id = ?", b.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrUnknownUser
		}
		if err := tx.Model(&model.Equipment{}).Where("id = ?", b.EquipmentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrUnknownEquipment
		}
		return tx.Create(b).Error
	})
}

func (s *gormStore) CreateUsageLog(ctx context.Context, l *model.UsageLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(l).Error
}

// ListInventorySessions returns sessions in insertion order, restricted to a
// calendar year when year is non-zero.
func (s *gormStore) ListInventorySessions(ctx context.Context, year int) ([]model.InventorySession, error) {
	q := s.db.WithContext(ctx).Order("created_at")
	if year != 0 {
		q = q.Where("date LIKE ?", strconv.Itoa(year)+"-%")
	}
	var sessions []model.InventorySession
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *gormStore) CreateInventorySession(ctx context.Context, sess *model.InventorySession) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(sess).Error
}

// UpdateInventorySession merges the non-zero fields of patch into the record
// with the given ID and reports whether a record matched.
func (s *gormStore) UpdateInventorySession(ctx context.Context, id string, patch model.InventorySession) (bool, error) {
	patch.ID = ""
	res := s.db.WithContext(ctx).
		Model(&model.InventorySession{}).
		Where("id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *gormStore) DeleteInventorySession(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&model.InventorySession{}, "id = ?", id)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (s *gormStore) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "user_id"}),
	}).Create(sub).Error
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error
}

func (s *gormStore) ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
