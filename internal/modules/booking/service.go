package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/notification"
	"github.com/thanhlp18/homestay-booking-sub000/internal/pricing"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
	"github.com/thanhlp18/homestay-booking-sub000/internal/schedule"
)

const (
	msgSlotTaken  = "Khung giờ đã được đặt"
	msgAvailable  = "Khung giờ còn trống"
	checkInLayout = "2006-01-02T15:04"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	notifier notification.Notifier
	log      logrus.FieldLogger
	loc      *time.Location
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	notifier notification.Notifier,
	log logrus.FieldLogger,
	loc *time.Location,
) *Service {
	if notifier == nil {
		notifier = notification.NoopNotifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		notifier: notifier,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// CheckAvailability resolves the stay a guest is about to pick and reports
// whether any blocking booking holds the room during it.
func (s *Service) CheckAvailability(ctx context.Context, roomID, timeSlotID, checkInDateTime string) (*AvailabilityResponse, error) {
	if roomID == "" || timeSlotID == "" {
		return nil, invalid("roomId", "Thiếu phòng hoặc khung giờ")
	}
	room, ts, err := s.loadRoomSlot(ctx, roomID, timeSlotID, "timeSlotId")
	if err != nil {
		return nil, err
	}
	date, clock, err := s.parseCheckIn(checkInDateTime)
	if err != nil {
		return nil, err
	}
	stay, err := resolve(room, ts, date, clock, "checkInDateTime")
	if err != nil {
		return nil, err
	}

	taken, err := s.bookings.ListOverlapping(ctx, room.ID, stay.Start, stay.End)
	if err != nil {
		return nil, fmt.Errorf("list overlapping: %w", err)
	}
	resp := &AvailabilityResponse{
		Available: len(taken) == 0,
		Message:   msgAvailable,
		CheckIn:   stay.Start.In(s.loc),
		CheckOut:  stay.End.In(s.loc),
		Conflicts: s.unavailable(taken),
	}
	if !resp.Available {
		resp.Message = msgSlotTaken
	}
	return resp, nil
}

// UnavailableTimes lists stays of the room touching [date, date+2 days), so
// overnight stays that spill into the next morning are included.
func (s *Service) UnavailableTimes(ctx context.Context, roomID, dateStr, timeSlotID string) (*UnavailableTimesResponse, error) {
	date, err := schedule.ParseDate(dateStr, s.loc)
	if err != nil {
		return nil, invalid("date", "Ngày không hợp lệ (YYYY-MM-DD)")
	}
	if timeSlotID != "" {
		if _, _, err := s.loadRoomSlot(ctx, roomID, timeSlotID, "timeSlotId"); err != nil {
			return nil, err
		}
	} else if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, notFoundOr(err, "room")
	}

	taken, err := s.bookings.ListOverlapping(ctx, roomID, date, schedule.At(date, 2, 0))
	if err != nil {
		return nil, fmt.Errorf("list overlapping: %w", err)
	}
	return &UnavailableTimesResponse{UnavailableSlots: s.unavailable(taken)}, nil
}

// Quote prices a cart and reports overlaps between its own entries.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	prepared, err := s.prepare(ctx, req.BranchID, req.SelectedSlots)
	if err != nil {
		return nil, err
	}
	conflicts := schedule.DetectSelectionConflicts(selections(prepared))
	resp := &QuoteResponse{
		Quote:        pricing.Calculate(items(prepared)),
		Slots:        make([]PricedSlot, 0, len(prepared)),
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}
	for _, p := range prepared {
		resp.Slots = append(resp.Slots, PricedSlot{
			RoomID:           p.slot.RoomID,
			TimeSlotID:       p.slot.TimeSlotID,
			BookingDate:      p.slot.BookingDate,
			CheckInTime:      p.slot.CheckInTime,
			CheckIn:          p.slot.CheckIn,
			CheckOut:         p.slot.CheckOut,
			Price:            p.slot.Price,
			WeekendSurcharge: p.slot.WeekendSurcharge,
		})
	}
	return resp, nil
}

// CreateBooking validates the request, prices it from stored rates and
// inserts the booking with all its slots, or nothing.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	if err := validateCustomer(&req); err != nil {
		return nil, err
	}
	prepared, err := s.prepare(ctx, req.BranchID, req.SelectedSlots)
	if err != nil {
		return nil, err
	}
	if conflicts := schedule.DetectRoomConflicts(selections(prepared)); len(conflicts) > 0 {
		return nil, &ConflictError{Message: conflicts[0].Conflicts[0].Message, Selections: conflicts}
	}

	quote := pricing.Calculate(items(prepared))
	s.warnClientPrices(req, prepared, quote)

	b := &domain.Booking{
		FullName:           req.FullName,
		Phone:              req.Phone,
		Email:              req.Email,
		CCCD:               req.CCCD,
		Guests:             req.Guests,
		Notes:              strings.TrimSpace(req.Notes),
		PaymentMethod:      domain.PaymentMethod(req.PaymentMethod),
		BasePrice:          quote.BasePrice,
		WeekendSurcharge:   quote.WeekendSurcharge,
		DiscountAmount:     quote.DiscountAmount,
		DiscountPercentage: quote.DiscountPercentage,
		TotalPrice:         quote.TotalPrice,
		Status:             domain.BookingPending,
		FrontIDImageURL:    req.FrontIDImageURL,
		BackIDImageURL:     req.BackIDImageURL,
		Slots:              make([]domain.BookingSlot, 0, len(prepared)),
	}
	for _, p := range prepared {
		b.Slots = append(b.Slots, p.slot)
	}

	if err := s.bookings.CreateIfAvailable(ctx, b); err != nil {
		var taken *repository.SlotTakenError
		switch {
		case errors.As(err, &taken):
			return nil, &ConflictError{Message: msgSlotTaken, Booked: s.unavailable(taken.Existing)}
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, &ConflictError{Message: msgSlotTaken}
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("room: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":  b.ID,
		"slots":       len(b.Slots),
		"total_price": b.TotalPrice,
	}).Info("booking created")
	if err := s.notifier.BookingCreated(ctx, b); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Error("notify booking created")
	}

	return &CreateBookingResponse{
		BookingID:          b.ID,
		BasePrice:          b.BasePrice,
		WeekendSurcharge:   b.WeekendSurcharge,
		DiscountAmount:     b.DiscountAmount,
		DiscountPercentage: b.DiscountPercentage,
		TotalPrice:         b.TotalPrice,
		Status:             b.Status,
	}, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "booking")
	}
	return b, nil
}

type prepared struct {
	selection schedule.Selection
	item      pricing.Item
	slot      domain.BookingSlot
	claimed   *int64
}

// prepare loads every selected room and time slot and resolves its stay.
// The request has already passed its binding rules.
func (s *Service) prepare(ctx context.Context, branchID string, selected []SelectedSlot) ([]prepared, error) {
	today := schedule.At(s.now().In(s.loc), 0, 0)

	out := make([]prepared, 0, len(selected))
	for i, sel := range selected {
		field := fmt.Sprintf("selectedSlots[%d]", i)
		date, err := schedule.ParseDate(sel.BookingDate, s.loc)
		if err != nil {
			return nil, invalid(field+".bookingDate", "Ngày không hợp lệ (YYYY-MM-DD)")
		}
		if date.Before(today) {
			return nil, invalid(field+".bookingDate", "Không thể đặt phòng cho ngày đã qua")
		}

		room, ts, err := s.loadRoomSlot(ctx, sel.RoomID, sel.TimeSlotID, field+".timeSlotId")
		if err != nil {
			return nil, err
		}
		branch := sel.BranchID
		if branch == "" {
			branch = branchID
		}
		if branch != "" && room.BranchID != branch {
			return nil, invalid(field+".roomId", "Phòng không thuộc chi nhánh đã chọn")
		}

		stay, err := resolve(room, ts, date, sel.CheckInTime, field+".checkInTime")
		if err != nil {
			return nil, err
		}
		clock := ""
		if !ts.Schedule().Overnight() {
			clock = stay.Start.Format("15:04")
		}

		item := pricing.Item{BasePrice: ts.Price, WeekendSurcharge: ts.WeekendSurcharge, Date: date}
		out = append(out, prepared{
			selection: schedule.Selection{
				Key:         fmt.Sprintf("%s:%s:%s:%s", room.ID, ts.ID, sel.BookingDate, clock),
				Date:        sel.BookingDate,
				RoomID:      room.ID,
				TimeSlotID:  ts.ID,
				CheckInTime: clock,
				Stay:        stay,
			},
			item: item,
			slot: domain.BookingSlot{
				RoomID:           room.ID,
				TimeSlotID:       ts.ID,
				BookingDate:      sel.BookingDate,
				CheckInTime:      clock,
				CheckIn:          stay.Start,
				CheckOut:         stay.End,
				Price:            ts.Price,
				WeekendSurcharge: item.AppliedSurcharge(),
			},
			claimed: sel.Price,
		})
	}
	return out, nil
}

func (s *Service) loadRoomSlot(ctx context.Context, roomID, timeSlotID, field string) (*domain.Room, *domain.TimeSlot, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, notFoundOr(err, "room")
	}
	ts, err := s.rooms.GetTimeSlot(ctx, timeSlotID)
	if err != nil {
		return nil, nil, notFoundOr(err, "time slot")
	}
	if ts.RoomID != room.ID {
		return nil, nil, invalid(field, "Khung giờ không thuộc phòng đã chọn")
	}
	return room, ts, nil
}

// parseCheckIn accepts RFC3339, "YYYY-MM-DDTHH:MM" or a bare date, all read
// in the booking timezone. A bare date yields an empty clock.
func (s *Service) parseCheckIn(raw string) (time.Time, string, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.In(s.loc)
		return schedule.At(t, 0, 0), t.Format("15:04"), nil
	}
	if t, err := time.ParseInLocation(checkInLayout, raw, s.loc); err == nil {
		return schedule.At(t, 0, 0), t.Format("15:04"), nil
	}
	if d, err := schedule.ParseDate(raw, s.loc); err == nil {
		return d, "", nil
	}
	return time.Time{}, "", invalid("checkInDateTime", "Thời gian nhận phòng không hợp lệ")
}

func resolve(room *domain.Room, ts *domain.TimeSlot, date time.Time, clock, field string) (schedule.Interval, error) {
	stay, err := schedule.ResolveStay(schedule.StayRequest{
		Date:         date,
		CheckInTime:  clock,
		Slot:         ts.Schedule(),
		RoomCheckIn:  room.CheckInTime,
		RoomCheckOut: room.CheckOutTime,
	})
	switch {
	case errors.Is(err, schedule.ErrCheckInRequired):
		return stay, invalid(field, "Vui lòng chọn giờ nhận phòng")
	case errors.Is(err, schedule.ErrInvalidClock):
		return stay, invalid(field, "Giờ nhận phòng không hợp lệ")
	}
	return stay, err
}

func (s *Service) warnClientPrices(req CreateBookingRequest, prepared []prepared, quote pricing.Quote) {
	entry := s.log.WithField("phone", req.Phone)
	if req.TotalPrice != nil && *req.TotalPrice != quote.TotalPrice {
		entry.WithFields(logrus.Fields{
			"client_total": *req.TotalPrice,
			"server_total": quote.TotalPrice,
		}).Warn("client total price differs, using stored rates")
	}
	for _, p := range prepared {
		if p.claimed != nil && *p.claimed != p.slot.Price {
			entry.WithFields(logrus.Fields{
				"time_slot_id": p.slot.TimeSlotID,
				"client_price": *p.claimed,
				"server_price": p.slot.Price,
			}).Warn("client slot price differs, using stored rate")
		}
	}
}

func (s *Service) unavailable(slots []domain.BookingSlot) []UnavailableSlot {
	out := make([]UnavailableSlot, 0, len(slots))
	for _, bs := range slots {
		out = append(out, UnavailableSlot{
			CheckIn:   bs.CheckIn.In(s.loc),
			CheckOut:  bs.CheckOut.In(s.loc),
			BookingID: bs.BookingID,
		})
	}
	return out
}

func selections(ps []prepared) []schedule.Selection {
	out := make([]schedule.Selection, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.selection)
	}
	return out
}

func items(ps []prepared) []pricing.Item {
	out := make([]pricing.Item, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.item)
	}
	return out
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}
