// Package email sends operational mail to account owners. Everything here
// is best-effort: a mail failure is logged and never propagated into the
// dispatch path.
package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"

	"github.com/sirwalterjones/sessionremind/internal/config"
	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository"
	"github.com/sirwalterjones/sessionremind/pkg/logger"
)

type Service struct {
	dialer *gomail.Dialer
	from   string
	users  repository.UserRepository
	logger *logger.Logger
}

func NewService(cfg config.EmailConfig, users repository.UserRepository, lgr *logger.Logger) *Service {
	return &Service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		users:  users,
		logger: lgr,
	}
}

// NotifyFailure emails the account owner when one of their reminders was
// rejected by the SMS gateway. Orphaned records have no owner to notify.
func (s *Service) NotifyFailure(ctx context.Context, msg *model.Message) {
	if msg.OwnerID == "" {
		return
	}
	ownerID, err := uuid.Parse(msg.OwnerID)
	if err != nil {
		return
	}
	owner, err := s.users.Get(ctx, ownerID)
	if err != nil {
		s.logger.Error(err, "failed to resolve owner for failure notification",
			"owner_id", msg.OwnerID)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", owner.Email)
	m.SetHeader("Subject", fmt.Sprintf("Reminder for %s could not be sent", msg.RecipientName))
	m.SetBody("text/plain", fmt.Sprintf(
		"The %s reminder for %s (session %q at %s) was rejected by the SMS gateway.\n"+
			"Check the phone number %s and reschedule if needed.",
		msg.Kind, msg.RecipientName, msg.SessionTitle, msg.SessionTime, msg.RecipientPhone,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error(err, "failed to send failure notification",
			"message_id", msg.ID.String())
	}
}
