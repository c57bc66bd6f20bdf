package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/schedule"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type BookingFilter struct {
	Status domain.BookingStatus
	Limit  int
	Offset int
}

// StatusChange moves a booking from an expected status to a new one.
type StatusChange struct {
	From domain.BookingStatus
	To   domain.BookingStatus
	At   time.Time
	// PaymentConfirmed also stamps payment_confirmed_at (webhook approvals).
	PaymentConfirmed bool
	AdminNotes       *string
}

// SlotTakenError reports which stored slots block a requested stay.
type SlotTakenError struct {
	Slot     domain.BookingSlot
	Existing []domain.BookingSlot
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("room %s is booked between %s and %s",
		e.Slot.RoomID, e.Slot.CheckIn.Format(time.RFC3339), e.Slot.CheckOut.Format(time.RFC3339))
}

func (e *SlotTakenError) Unwrap() error { return ErrSlotTaken }

// ListOverlapping returns slots of roomID held by a blocking booking whose stay
// overlaps [from, to).
func (r *BookingRepository) ListOverlapping(ctx context.Context, roomID string, from, to time.Time) ([]domain.BookingSlot, error) {
	return overlapping(r.db.WithContext(ctx), roomID, from, to)
}

func overlapping(db *gorm.DB, roomID string, from, to time.Time) ([]domain.BookingSlot, error) {
	var slots []domain.BookingSlot
	err := db.Model(&domain.BookingSlot{}).
		Select("booking_slots.*").
		Joins("JOIN bookings ON bookings.id = booking_slots.booking_id").
		Where("booking_slots.room_id = ?", roomID).
		Where("bookings.status IN ?", domain.BlockingStatuses).
		Where("booking_slots.check_in < ? AND booking_slots.check_out > ?", to.UTC(), from.UTC()).
		Order("booking_slots.check_in ASC").
		Find(&slots).Error
	return slots, err
}

// CreateIfAvailable inserts b and its slots in one transaction after locking
// the affected rooms (ascending id) and re-checking every stay. Either all
// slots are stored or none.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	if len(b.Slots) == 0 {
		return errors.New("booking has no slots")
	}
	for i := range b.Slots {
		b.Slots[i].CheckIn = b.Slots[i].CheckIn.UTC()
		b.Slots[i].CheckOut = b.Slots[i].CheckOut.UTC()
	}
	if err := selfOverlap(b.Slots); err != nil {
		return err
	}

	roomIDs := distinctRooms(b.Slots)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rooms []domain.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id IN ?", roomIDs).
			Order("id ASC").
			Find(&rooms).Error; err != nil {
			return err
		}
		if len(rooms) != len(roomIDs) {
			return ErrNotFound
		}

		for _, s := range b.Slots {
			taken, err := overlapping(tx, s.RoomID, s.CheckIn, s.CheckOut)
			if err != nil {
				return err
			}
			if len(taken) > 0 {
				return &SlotTakenError{Slot: s, Existing: taken}
			}
		}

		return tx.Create(b).Error
	})
}

func selfOverlap(slots []domain.BookingSlot) error {
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			a, c := slots[i], slots[j]
			if a.RoomID != c.RoomID {
				continue
			}
			if schedule.Overlaps(schedule.Interval{Start: a.CheckIn, End: a.CheckOut}, schedule.Interval{Start: c.CheckIn, End: c.CheckOut}) {
				return &SlotTakenError{Slot: c, Existing: []domain.BookingSlot{a}}
			}
		}
	}
	return nil
}

func distinctRooms(slots []domain.BookingSlot) []string {
	seen := make(map[string]struct{}, len(slots))
	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s.RoomID]; ok {
			continue
		}
		seen[s.RoomID] = struct{}{}
		ids = append(ids, s.RoomID)
	}
	sort.Strings(ids)
	return ids
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return getBooking(r.db.WithContext(ctx), id)
}

func getBooking(db *gorm.DB, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := db.
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("check_in ASC") }).
		Preload("Slots.Room").
		Preload("Slots.TimeSlot").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// List returns bookings newest first together with the unpaged total.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	var bookings []domain.Booking
	err := q.
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("check_in ASC") }).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&bookings).Error
	return bookings, total, err
}

// TransitionStatus applies c only if the booking is still in c.From.
func (r *BookingRepository) TransitionStatus(ctx context.Context, id string, c StatusChange) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := transition(tx, id, c); err != nil {
			return err
		}
		b, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	return out, err
}

func transition(tx *gorm.DB, id string, c StatusChange) error {
	at := c.At.UTC()
	updates := map[string]interface{}{
		"status":     c.To,
		"updated_at": at,
	}
	switch c.To {
	case domain.BookingApproved:
		updates["approved_at"] = at
	case domain.BookingRejected:
		updates["rejected_at"] = at
	case domain.BookingPaymentConfirmed:
		updates["payment_confirmed_at"] = at
	case domain.BookingCancelled:
		updates["cancelled_at"] = at
	}
	if c.PaymentConfirmed {
		updates["payment_confirmed_at"] = at
	}
	if c.AdminNotes != nil {
		updates["admin_notes"] = *c.AdminNotes
	}

	res := tx.Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, c.From).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var n int64
	if err := tx.Model(&domain.Booking{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrStaleStatus
}
