package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

type CalendarService interface {
	Availability(ctx context.Context, f repo.AvailabilityFilter) ([]entity.Availability, error)
	Book(ctx context.Context, availabilityID, userID string) (*entity.Booking, error)
	UserBookings(ctx context.Context, userID string) ([]entity.Booking, error)
	ListEvents(ctx context.Context, from, to time.Time) ([]entity.Event, error)
	RegisterEvent(ctx context.Context, eventID, userID string) (*entity.EventRegistration, error)
	UserRegistrations(ctx context.Context, userID string) ([]entity.EventRegistration, error)
}

type CalendarHandler struct {
	Svc    CalendarService
	Logger *logrus.Logger
}

func NewCalendarHandler(svc CalendarService, logger *logrus.Logger) *CalendarHandler {
	return &CalendarHandler{Svc: svc, Logger: logger}
}

type rangeQuery struct {
	MentorID  string `form:"mentor_id"`
	StartDate string `form:"start_date" binding:"omitempty,ymd"`
	EndDate   string `form:"end_date" binding:"omitempty,ymd"`
}

func (q rangeQuery) bounds() (time.Time, time.Time) {
	from, _ := helpers.ParseDate(q.StartDate)
	to, _ := helpers.ParseDate(q.EndDate)
	return from, to
}

type bookingRequest struct {
	AvailabilityID string `json:"availability_id" binding:"required"`
	UserID         string `json:"user_id"`
}

func (h *CalendarHandler) Availability(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	from, to := q.bounds()
	slots, err := h.Svc.Availability(c.Request.Context(), repo.AvailabilityFilter{MentorID: q.MentorID, From: from, To: to})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, slots, "availability", nil)
}

func (h *CalendarHandler) Book(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, ok := bodyUser(c, req.UserID)
	if !ok {
		return
	}
	b, err := h.Svc.Book(c.Request.Context(), req.AvailabilityID, uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, b, "session booked", nil)
}

func (h *CalendarHandler) UserBookings(c *gin.Context) {
	bs, err := h.Svc.UserBookings(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, bs, "bookings", nil)
}

func (h *CalendarHandler) Events(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	from, to := q.bounds()
	evs, err := h.Svc.ListEvents(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, evs, "events", nil)
}

func (h *CalendarHandler) RegisterEvent(c *gin.Context) {
	var req userBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	uid, ok := bodyUser(c, req.UserID)
	if !ok {
		return
	}
	reg, err := h.Svc.RegisterEvent(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, reg, "registered to event", nil)
}

func (h *CalendarHandler) UserRegistrations(c *gin.Context) {
	regs, err := h.Svc.UserRegistrations(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, regs, "event registrations", nil)
}
