package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/pkg/errors"
)

// Mailgun delivers mail through one shared Mailgun client.
type Mailgun struct {
	client *mg.MailgunImpl
	from   string
	tags   []string
}

var _ Sender = (*Mailgun)(nil)

// NewMailgun builds the client. apiBase switches region (mg.APIBaseEU); empty keeps the US default.
// Every message is tagged with tags for Mailgun analytics.
func NewMailgun(domain, apiKey, from, apiBase string, tags ...string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{client: client, from: from, tags: tags}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.from, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if len(m.tags) > 0 {
		if err := msg.AddTag(m.tags...); err != nil {
			return errors.Wrap(err, "mailgun tag")
		}
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, _, err := m.client.Send(ctx, msg); err != nil {
		return errors.Wrapf(err, "mailgun send to %s", to)
	}
	return nil
}
