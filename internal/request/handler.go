package request

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

// Submit godoc
// @Summary      Submit subscription request
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SubmitRequest  true  "Requested plan"
// @Success      201      {object}  Request
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /requests [post]
func (h *Handler) Submit(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberName := c.GetString("user_email")

	created, err := h.service.Submit(c.Request.Context(), userID, memberName, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListRequests godoc
// @Summary      List subscription requests
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Request
// @Failure      500  {object}  gin.H
// @Router       /requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	requests, err := h.service.ListRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *Handler) decide(c *gin.Context, decide func(ctx *gin.Context, id, deciderID int) (*Request, error)) {
	deciderID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("requestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	decided, err := decide(c, id, deciderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		case errors.Is(err, ErrRequestAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": "Request already decided"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide request"})
		}
		return
	}

	c.JSON(http.StatusOK, decided)
}

// Approve godoc
// @Summary      Approve subscription request
// @Description  Marks the request approved and creates the subscription.
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      int  true  "Request ID"
// @Success      200        {object}  Request
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Router       /requests/{requestID}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, func(ctx *gin.Context, id, deciderID int) (*Request, error) {
		return h.service.Approve(ctx.Request.Context(), id, deciderID)
	})
}

// Reject godoc
// @Summary      Reject subscription request
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      int  true  "Request ID"
// @Success      200        {object}  Request
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Router       /requests/{requestID}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, func(ctx *gin.Context, id, deciderID int) (*Request, error) {
		return h.service.Reject(ctx.Request.Context(), id, deciderID)
	})
}
