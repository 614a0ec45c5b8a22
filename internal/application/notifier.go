package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/config"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
	"github.com/emprendevoz/emprende-api/pkg/mailer"
	mailtpl "github.com/emprendevoz/emprende-api/pkg/mailer/templates"
)

// Notifier queues transactional emails. Queue failures are logged only.
type Notifier struct {
	Queue  EmailQueue
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewNotifier(queue EmailQueue, cfg *config.Config, logger *logrus.Logger) *Notifier {
	return &Notifier{Queue: queue, Cfg: cfg, Logger: logger}
}

func (n *Notifier) enqueue(ctx context.Context, to, template string, data map[string]any) {
	if n == nil || n.Queue == nil || to == "" || !n.Cfg.MailSendEnabled {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := n.Queue.PublishJSON(c, mailer.EmailJob{To: to, Template: template, Data: data}); err != nil {
		n.Logger.WithError(err).WithField("template", template).Warn("enqueue email failed")
	}
}

func (n *Notifier) Welcome(ctx context.Context, p *entity.Profile) {
	if n == nil {
		return
	}
	n.enqueue(ctx, p.Email, mailtpl.Welcome, mailtpl.NewWelcomeData(n.Cfg, p.FullName, p.Email))
}

func (n *Notifier) CertificateIssued(ctx context.Context, p *entity.Profile, moduleID, moduleTitle, hash string, at time.Time) {
	if n == nil {
		return
	}
	n.enqueue(ctx, p.Email, mailtpl.CertificateIssued,
		mailtpl.NewCertificateIssuedData(n.Cfg, p.FullName, p.Email, moduleID, moduleTitle, hash, mailtpl.WithTime(at)))
}

func (n *Notifier) BookingConfirmed(ctx context.Context, p *entity.Profile, slot *entity.Availability) {
	if n == nil || slot == nil {
		return
	}
	date, _ := time.Parse(helpers.DateLayout, slot.Date)
	n.enqueue(ctx, p.Email, mailtpl.BookingConfirmed,
		mailtpl.NewBookingConfirmedData(n.Cfg, p.FullName, p.Email, mailtpl.WithSession(slot.MentorName, date, slot.StartTime, slot.SessionType)))
}
