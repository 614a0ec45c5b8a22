// Package worker turns queued email jobs into delivered messages.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/pkg/helpers"
	"github.com/emprendevoz/emprende-api/pkg/mailer"
	mailtpl "github.com/emprendevoz/emprende-api/pkg/mailer/templates"
)

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Drop rejects a message that can never succeed.
	Drop
	// Retry puts the message back on the queue.
	Retry
)

var ErrBadJob = errors.New("bad email job")

type EmailWorker struct {
	Sender      mailer.Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

func NewEmailWorker(sender mailer.Sender, logger *logrus.Logger) *EmailWorker {
	return &EmailWorker{Sender: sender, Logger: logger, SendTimeout: 15 * time.Second}
}

// Render resolves the subject and bodies of job, rendering its template when set.
func Render(job *mailer.EmailJob) (subject, text, html string, err error) {
	if job.To == "" {
		return "", "", "", errors.Wrap(ErrBadJob, "missing recipient")
	}
	helpers.EnsureRecipient(job)
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", errors.Wrap(ErrBadJob, "missing content")
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	if !mailtpl.Known(job.Template) {
		return "", "", "", errors.Wrapf(ErrBadJob, "unknown template %q", job.Template)
	}
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", errors.Wrapf(ErrBadJob, "render %s: %v", job.Template, err)
	}
	if subject == "" {
		subject = helpers.SubjectFor(job.Template)
	}
	return subject, text, html, nil
}

// Handle processes one raw message body.
func (w *EmailWorker) Handle(ctx context.Context, body []byte) Outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("undecodable email job dropped")
		return Drop
	}
	subject, text, html, err := Render(&job)
	if err != nil {
		w.Logger.WithError(err).WithField("template", job.Template).Warn("email job dropped")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Error("email send failed")
		return Retry
	}
	w.Logger.WithField("template", job.Template).Info("email sent")
	return Ack
}

// Run consumes deliveries until the channel closes or ctx is done.
func (w *EmailWorker) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			switch w.Handle(ctx, msg.Body) {
			case Ack:
				_ = msg.Ack(false)
			case Drop:
				_ = msg.Nack(false, false)
			case Retry:
				_ = msg.Nack(false, true)
			}
		}
	}
}
