package subscription

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

// CreateSubscription godoc
// @Summary      Create subscription
// @Description  Creates an active subscription for a member and wires the member's pointers.
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSubscriptionRequest  true  "Subscription data"
// @Success      201      {object}  Subscription
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /subscriptions [post]
func (h *Handler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateSubscription(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListSubscriptions godoc
// @Summary      List subscriptions
// @Description  Staff and admin see all subscriptions (with an expiry reconciliation pass), members only their own.
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Subscription
// @Failure      500  {object}  gin.H
// @Router       /subscriptions [get]
func (h *Handler) ListSubscriptions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	role, _ := auth.GetUserRole(c)

	var (
		subs []Subscription
		err  error
	)
	if role == auth.RoleAdmin || role == auth.RoleStaff {
		subs, err = h.service.ListSubscriptions(c.Request.Context())
	} else {
		subs, err = h.service.ListForUser(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// GetSubscription godoc
// @Summary      Get subscription
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        subscriptionID  path      int  true  "Subscription ID"
// @Success      200             {object}  Subscription
// @Failure      404             {object}  gin.H
// @Router       /subscriptions/{subscriptionID} [get]
func (h *Handler) GetSubscription(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("subscriptionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	sub, err := h.service.GetSubscription(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// GetActiveSubscription godoc
// @Summary      Current active subscription
// @Description  Returns the caller's live subscription, if any.
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Subscription
// @Failure      404  {object}  gin.H
// @Router       /subscriptions/active [get]
func (h *Handler) GetActiveSubscription(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	sub, err := h.service.ActiveForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

type updateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=active expired cancelled suspended"`
}

// UpdateStatus godoc
// @Summary      Update subscription status
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        subscriptionID  path      int                  true  "Subscription ID"
// @Param        request         body      updateStatusRequest  true  "New status"
// @Success      200             {object}  gin.H
// @Failure      400             {object}  gin.H
// @Failure      404             {object}  gin.H
// @Router       /subscriptions/{subscriptionID}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("subscriptionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription status updated"})
}
