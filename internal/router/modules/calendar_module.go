package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
	"github.com/emprendevoz/emprende-api/internal/interface/middleware"
)

// CalendarModule mounts mentor availability, bookings and events together
// with the mentor directory and chat.
type CalendarModule struct {
	Calendar *handlers.CalendarHandler
	Mentors  *handlers.MentorHandler
	Guard    Guard
}

func NewCalendarModule(cal *handlers.CalendarHandler, mentors *handlers.MentorHandler, g Guard) *CalendarModule {
	return &CalendarModule{Calendar: cal, Mentors: mentors, Guard: g}
}

func (m *CalendarModule) Register(rg *gin.RouterGroup) {
	own := middleware.Owner("userId")

	cal := m.Guard.Protected(rg, "/calendar")
	{
		cal.GET("/availability", m.Calendar.Availability)
		cal.POST("/bookings", m.Calendar.Book)
		cal.GET("/bookings/user/:userId", own, m.Calendar.UserBookings)
		cal.GET("/events", m.Calendar.Events)
		cal.POST("/events/:id/register", m.Calendar.RegisterEvent)
		cal.GET("/events/user/:userId/registrations", own, m.Calendar.UserRegistrations)
	}

	mentors := m.Guard.Protected(rg, "/mentors")
	{
		mentors.GET("", m.Mentors.Available)
		mentors.GET("/assignment", m.Mentors.Assignment)
		mentors.GET("/messages", m.Mentors.Messages)
		mentors.POST("/messages", m.Mentors.Send)
	}
}
