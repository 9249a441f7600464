package session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/zeeddd0107/GymPlify-sub000/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrBlockedDateNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSlotFull), errors.Is(err, ErrDateAlreadyBlocked),
		errors.Is(err, ErrSessionAlreadyCompleted), errors.Is(err, ErrSessionNotRescheduleable):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrUnknownTimeSlot),
		errors.Is(err, ErrDateInPast), errors.Is(err, ErrDateBlocked), errors.Is(err, ErrSlotInPast):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateSession godoc
// @Summary      Book gym session
// @Description  Creates a scheduled session for a member in one of the fixed time slots.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSessionRequest  true  "Session booking data"
// @Success      201      {object}  Session
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateSession(c.Request.Context(), req)
	if err != nil {
		status := errStatus(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to create session"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListSessions godoc
// @Summary      List sessions
// @Description  Admin and staff see all sessions (optionally filtered to one day), members only their own.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Filter to a single day (YYYY-MM-DD, staff only)"
// @Success      200   {array}   Session
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	role, _ := auth.GetUserRole(c)

	var (
		sessions []Session
		err      error
	)
	if role == auth.RoleAdmin || role == auth.RoleStaff {
		if date := c.Query("date"); date != "" {
			sessions, err = h.service.ListSessionsForDay(c.Request.Context(), date)
			if errors.Is(err, ErrInvalidDate) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		} else {
			sessions, err = h.service.ListSessions(c.Request.Context())
		}
	} else {
		sessions, err = h.service.ListSessionsForUser(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// SlotAvailability godoc
// @Summary      Slot availability for a date
// @Description  Returns occupancy, fullness and past flags for each time slot on the given date.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {array}   SlotAvailability
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /sessions/availability [get]
func (h *Handler) SlotAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query param is required"})
		return
	}

	availability, err := h.service.SlotAvailability(c.Request.Context(), date)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, availability)
}

// CompleteSession godoc
// @Summary      Mark session completed
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /sessions/{sessionID}/complete [post]
func (h *Handler) CompleteSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	if err := h.service.CompleteSession(c.Request.Context(), id); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session marked as completed"})
}

// RescheduleSession godoc
// @Summary      Reschedule session
// @Description  Moves a scheduled session to another date or slot, subject to capacity.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                       true  "Session ID"
// @Param        request    body      RescheduleSessionRequest  true  "New date and slot"
// @Success      200        {object}  Session
// @Failure      400        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /sessions/{sessionID}/reschedule [put]
func (h *Handler) RescheduleSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var req RescheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.RescheduleSession(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// CancelSession godoc
// @Summary      Cancel session
// @Description  Removes the session record entirely; no cancelled status is kept.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /sessions/{sessionID} [delete]
func (h *Handler) CancelSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	if err := h.service.CancelSession(c.Request.Context(), id); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled"})
}

// BlockDate godoc
// @Summary      Block a date
// @Description  Closes a calendar date for booking.
// @Tags         blocked-dates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BlockDateRequest  true  "Date to block"
// @Success      201      {object}  BlockedDate
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /blocked-dates [post]
func (h *Handler) BlockDate(c *gin.Context) {
	var req BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blocked, err := h.service.BlockDate(c.Request.Context(), req.Date)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, blocked)
}

// UnblockDate godoc
// @Summary      Unblock a date
// @Tags         blocked-dates
// @Security     BearerAuth
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  gin.H
// @Failure      404   {object}  gin.H
// @Router       /blocked-dates/{date} [delete]
func (h *Handler) UnblockDate(c *gin.Context) {
	if err := h.service.UnblockDate(c.Request.Context(), c.Param("date")); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Date unblocked"})
}

// ListBlockedDates godoc
// @Summary      List blocked dates
// @Tags         blocked-dates
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BlockedDate
// @Failure      500  {object}  gin.H
// @Router       /blocked-dates [get]
func (h *Handler) ListBlockedDates(c *gin.Context) {
	dates, err := h.service.ListBlockedDates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blocked dates"})
		return
	}

	c.JSON(http.StatusOK, dates)
}
