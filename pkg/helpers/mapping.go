package helpers

import (
	"fmt"

	"github.com/emprendevoz/emprende-api/pkg/mailer"
	mailtpl "github.com/emprendevoz/emprende-api/pkg/mailer/templates"
)

// SubjectFor returns a fallback subject when a template has no subject file.
func SubjectFor(template string) string {
	switch template {
	case mailtpl.Welcome:
		return "Bienvenido a Emprende Voz"
	case mailtpl.CertificateIssued:
		return "Tu certificado está listo"
	case mailtpl.BookingConfirmed:
		return "Sesión de mentoría confirmada"
	default:
		return "Notificación"
	}
}

// EnsureRecipient copies the job recipient into the template data.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
