package attendance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/zeeddd0107/GymPlify-sub000/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Scan godoc
// @Summary      Scan QR code
// @Description  Toggles check-in/check-out for the member encoded in the scanned value.
// @Tags         attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ScanRequest  true  "Scanned QR value"
// @Success      200      {object}  ScanResponse
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /attendance/scan [post]
func (h *Handler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, action, err := h.service.Scan(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, ErrInvalidQRCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid QR code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
		return
	}

	c.JSON(http.StatusOK, ScanResponse{Action: action, Attendance: record})
}

// MyQRCode godoc
// @Summary      Get my QR code value
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  QRCodeResponse
// @Router       /attendance/qr [get]
func (h *Handler) MyQRCode(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	c.JSON(http.StatusOK, QRCodeResponse{Code: h.service.IssueQRCode(userID)})
}

// ListForDay godoc
// @Summary      List attendance for a day
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Date (YYYY-MM-DD), defaults to today"
// @Success      200   {array}   Attendance
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /attendance [get]
func (h *Handler) ListForDay(c *gin.Context) {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	records, err := h.service.ListForDay(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// ListForUser godoc
// @Summary      List attendance history for a member
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {array}   Attendance
// @Failure      400     {object}  gin.H
// @Failure      500     {object}  gin.H
// @Router       /attendance/users/{userID} [get]
func (h *Handler) ListForUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	records, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, records)
}
