package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
	"github.com/thanhlp18/homestay-booking-sub000/internal/schedule"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidDate = errors.New("invalid date")
)

type BranchRepository interface {
	ListActive(ctx context.Context) ([]domain.Branch, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Branch, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	GetTimeSlot(ctx context.Context, id string) (*domain.TimeSlot, error)
}

// OccupancyReader lists stays holding a room.
type OccupancyReader interface {
	ListOverlapping(ctx context.Context, roomID string, from, to time.Time) ([]domain.BookingSlot, error)
}

type Service struct {
	branches  BranchRepository
	rooms     RoomRepository
	occupancy OccupancyReader
	log       logrus.FieldLogger
	loc       *time.Location
	step      int
	now       func() time.Time
}

func NewService(
	branches BranchRepository,
	rooms RoomRepository,
	occupancy OccupancyReader,
	log logrus.FieldLogger,
	loc *time.Location,
	stepMinutes int,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		branches:  branches,
		rooms:     rooms,
		occupancy: occupancy,
		log:       log,
		loc:       loc,
		step:      stepMinutes,
		now:       time.Now,
	}
}

func (s *Service) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	branches, err := s.branches.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

func (s *Service) GetBranch(ctx context.Context, slug string) (*domain.Branch, error) {
	b, err := s.branches.GetBySlug(ctx, slug)
	if err != nil {
		return nil, wrap(err, "branch")
	}
	return b, nil
}

func (s *Service) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, wrap(err, "room")
	}
	return room, nil
}

// CheckInTimes offers the check-in clocks of a time slot on a date, each
// marked unavailable when the resulting stay would overlap a held booking or
// start in the past.
func (s *Service) CheckInTimes(ctx context.Context, timeSlotID, dateStr string) (*CheckInTimesResponse, error) {
	date, err := schedule.ParseDate(dateStr, s.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}
	ts, err := s.rooms.GetTimeSlot(ctx, timeSlotID)
	if err != nil {
		return nil, wrap(err, "time slot")
	}
	room, err := s.rooms.GetByID(ctx, ts.RoomID)
	if err != nil {
		return nil, wrap(err, "room")
	}

	resp := &CheckInTimesResponse{
		TimeSlotID: ts.ID,
		Date:       dateStr,
		Label:      ts.Time,
		Times:      []CheckInOption{},
	}
	slot := ts.Schedule()
	if slot.Overnight() {
		resp.Overnight = true
		return resp, nil
	}

	r, ok := slot.Range()
	if !ok {
		s.log.WithFields(logrus.Fields{
			"time_slot_id": ts.ID,
			"label":        ts.Time,
		}).Warn("time slot label not recognized, offering the whole day")
		resp.Fallback = true
	}
	resp.Range = &r

	held, err := s.occupancy.ListOverlapping(ctx, room.ID, date, schedule.At(date, 2, 0))
	if err != nil {
		return nil, fmt.Errorf("list overlapping: %w", err)
	}
	now := s.now()

	for _, clock := range schedule.GenerateCheckInTimes(r, s.step) {
		stay, err := schedule.ResolveStay(schedule.StayRequest{
			Date:         date,
			CheckInTime:  clock,
			Slot:         slot,
			RoomCheckIn:  room.CheckInTime,
			RoomCheckOut: room.CheckOutTime,
		})
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", clock, err)
		}
		resp.Times = append(resp.Times, CheckInOption{
			Time:      clock,
			Available: !stay.Start.Before(now) && free(stay, held),
		})
	}
	return resp, nil
}

func free(stay schedule.Interval, held []domain.BookingSlot) bool {
	for _, h := range held {
		if schedule.Overlaps(stay, schedule.Interval{Start: h.CheckIn, End: h.CheckOut}) {
			return false
		}
	}
	return true
}

func wrap(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}
