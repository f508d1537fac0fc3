package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/kafka"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Message is what would go out to the recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender turns booking events into notification messages. There is no
// mail transport; messages are written to the log.
type Sender struct {
	users  UserLookup
	logger *slog.Logger
}

func NewSender(users UserLookup, logger *slog.Logger) *Sender {
	return &Sender{users: users, logger: logger}
}

// Send drops events for users that no longer exist.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	user, err := s.users.GetByID(ctx, event.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "notification recipient not found", "user_id", event.UserID, "booking_id", event.BookingID)
			return nil
		}
		return fmt.Errorf("load recipient: %w", err)
	}

	msg := Compose(user, event)
	s.logger.InfoContext(ctx, "send email",
		"to", msg.To, "subject", msg.Subject, "event_id", event.ID, "booking_id", event.BookingID)
	return nil
}

func Compose(user *domain.User, event kafka.BookingEvent) Message {
	var subject, verb string
	switch event.Type {
	case kafka.EventBookingCancelled:
		subject, verb = "Your booking was cancelled", "has been cancelled"
	default:
		subject, verb = "Your booking is confirmed", "is confirmed"
	}

	what := "trip"
	switch event.Kind {
	case kafka.KindFlight:
		what = "flight"
	case kafka.KindDestination:
		what = "stay"
	}

	body := fmt.Sprintf("Hi %s,\n\nYour %s booking #%d (%s) %s. Total: %.2f.\n",
		user.FullName, what, event.BookingID, event.Reference, verb, domain.CentsToAmount(event.TotalCents))
	return Message{To: user.Email, Subject: subject, Body: body}
}
