package templates

import (
	"time"

	"github.com/emprendevoz/emprende-api/config"
)

// Option pattern
type Option func(*EmailData)

func WithActionURL(url string) Option { return func(d *EmailData) { d.ActionURL = url } }

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02/01/2006 15:04") }
}

func WithCertificate(moduleID, moduleTitle, hash string) Option {
	return func(d *EmailData) {
		d.ModuleID = moduleID
		d.ModuleTitle = moduleTitle
		d.Hash = hash
	}
}

func WithSession(mentor string, date time.Time, start, sessionType string) Option {
	return func(d *EmailData) {
		d.MentorName = mentor
		d.SessionDate = date.Format("02/01/2006")
		d.SessionTime = start
		d.SessionType = sessionType
	}
}

// NewBaseEmailData fills shared fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		RecipientEmail: recipient,
		Type:           typ,
		CompanyName:    cfg.CompanyName,
		AppName:        cfg.AppName,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}

func NewCertificateIssuedData(cfg *config.Config, name, email, moduleID, moduleTitle, hash string, opts ...Option) map[string]any {
	opts = append([]Option{WithCertificate(moduleID, moduleTitle, hash), WithActionURL(cfg.CertificateURL)}, opts...)
	return ToMap(NewBaseEmailData(cfg, CertificateIssued, name, email, opts...))
}

func NewBookingConfirmedData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	opts = append([]Option{WithActionURL(cfg.CalendarURL)}, opts...)
	return ToMap(NewBaseEmailData(cfg, BookingConfirmed, name, email, opts...))
}
