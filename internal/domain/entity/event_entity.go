package entity

// Domain event names, carried in the "type" header of published messages.
const (
	EventTransactionCreated  = "transaction.created"
	EventAchievementUnlocked = "achievement.unlocked"
	EventCertificateIssued   = "certificate.issued"
	EventBookingCreated      = "booking.created"
)
