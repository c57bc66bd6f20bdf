// Package notification emails booking events to the homestay admin and guests.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

// Notifier is told about booking events after they are committed.
type Notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking) error
	BookingApproved(ctx context.Context, b *domain.Booking) error
	BookingRejected(ctx context.Context, b *domain.Booking) error
}

type NoopNotifier struct{}

func (NoopNotifier) BookingCreated(context.Context, *domain.Booking) error  { return nil }
func (NoopNotifier) BookingApproved(context.Context, *domain.Booking) error { return nil }
func (NoopNotifier) BookingRejected(context.Context, *domain.Booking) error { return nil }

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

type SMTPNotifier struct {
	sender gomail.Sender
	dialer *gomail.Dialer
	from   string
	admin  string
	loc    *time.Location
}

// NewSMTPNotifier dials the server per batch of messages.
func NewSMTPNotifier(cfg SMTPConfig, loc *time.Location) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		admin:  cfg.AdminEmail,
		loc:    loc,
	}
}

func newWithSender(sender gomail.Sender, from, admin string, loc *time.Location) *SMTPNotifier {
	return &SMTPNotifier{sender: sender, from: from, admin: admin, loc: loc}
}

func (n *SMTPNotifier) BookingCreated(_ context.Context, b *domain.Booking) error {
	var msgs []*gomail.Message
	if n.admin != "" {
		msgs = append(msgs, n.message(n.admin,
			fmt.Sprintf("[Homestay] Đơn đặt phòng mới %s", shortID(b.ID)),
			n.render("Có đơn đặt phòng mới cần duyệt.", b)))
	}
	if b.Email != "" {
		msgs = append(msgs, n.message(b.Email,
			"Homestay đã nhận yêu cầu đặt phòng của bạn",
			n.render("Chúng tôi đã nhận yêu cầu đặt phòng. Vui lòng chuyển khoản với nội dung là mã đặt phòng.", b)))
	}
	return n.send(msgs...)
}

func (n *SMTPNotifier) BookingApproved(_ context.Context, b *domain.Booking) error {
	if b.Email == "" {
		return nil
	}
	return n.send(n.message(b.Email, "Đặt phòng đã được xác nhận",
		n.render("Đặt phòng của bạn đã được xác nhận. Hẹn gặp bạn!", b)))
}

func (n *SMTPNotifier) BookingRejected(_ context.Context, b *domain.Booking) error {
	if b.Email == "" {
		return nil
	}
	intro := "Rất tiếc, đặt phòng của bạn đã bị từ chối."
	if b.AdminNotes != "" {
		intro += " Lý do: " + b.AdminNotes
	}
	return n.send(n.message(b.Email, "Đặt phòng bị từ chối", n.render(intro, b)))
}

func (n *SMTPNotifier) send(msgs ...*gomail.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if n.sender != nil {
		return gomail.Send(n.sender, msgs...)
	}
	return n.dialer.DialAndSend(msgs...)
}

func (n *SMTPNotifier) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

func (n *SMTPNotifier) render(intro string, b *domain.Booking) string {
	var sb strings.Builder
	sb.WriteString(intro)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Mã đặt phòng: %s\n", b.ID)
	fmt.Fprintf(&sb, "Khách: %s (%s)\n", b.FullName, b.Phone)
	fmt.Fprintf(&sb, "Số khách: %d\n", b.Guests)
	for _, s := range b.Slots {
		fmt.Fprintf(&sb, "- %s: %s → %s\n", s.BookingDate,
			s.CheckIn.In(n.loc).Format("15:04 02/01"), s.CheckOut.In(n.loc).Format("15:04 02/01"))
	}
	fmt.Fprintf(&sb, "Tổng tiền: %s VND\n", FormatVND(b.TotalPrice))
	fmt.Fprintf(&sb, "Thanh toán: %s\n", b.PaymentMethod)
	return sb.String()
}

// FormatVND groups thousands with dots: 1250000 -> "1.250.000".
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
