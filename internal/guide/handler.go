package guide

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zeeddd0107/GymPlify-sub000/internal/api"
	"github.com/zeeddd0107/GymPlify-sub000/internal/auth"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateGuide godoc
// @Summary      Create workout guide
// @Tags         guides
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SaveGuideRequest  true  "Guide data"
// @Success      201      {object}  Guide
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/guides [post]
func (h *Handler) CreateGuide(c *gin.Context) {
	var req SaveGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	userID, _ := auth.GetUserID(c)
	g, err := h.repo.Create(c.Request.Context(), &Guide{
		Title:       req.Title,
		Description: req.Description,
		Equipment:   req.Equipment,
		VideoURL:    req.VideoURL,
		ImageURL:    req.ImageURL,
		CreatedBy:   userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create guide"})
		return
	}

	c.JSON(http.StatusCreated, g)
}

// ListGuides godoc
// @Summary      List workout guides
// @Tags         guides
// @Security     BearerAuth
// @Produce      json
// @Param        equipment  query     string  false  "Filter by equipment"
// @Success      200        {array}   Guide
// @Failure      500        {object}  api.ErrorResponse
// @Router       /guides [get]
func (h *Handler) ListGuides(c *gin.Context) {
	var (
		guides []Guide
		err    error
	)
	if equipment := c.Query("equipment"); equipment != "" {
		guides, err = h.repo.ListByEquipment(c.Request.Context(), equipment)
	} else {
		guides, err = h.repo.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch guides"})
		return
	}

	c.JSON(http.StatusOK, guides)
}

// GetGuide godoc
// @Summary      Get workout guide
// @Tags         guides
// @Security     BearerAuth
// @Produce      json
// @Param        guideID  path      int  true  "Guide ID"
// @Success      200      {object}  Guide
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /guides/{guideID} [get]
func (h *Handler) GetGuide(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("guideID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid guide ID"})
		return
	}

	g, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrGuideNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Guide not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch guide"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// UpdateGuide godoc
// @Summary      Update workout guide
// @Tags         guides
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        guideID  path      int               true  "Guide ID"
// @Param        request  body      SaveGuideRequest  true  "Guide data"
// @Success      200      {object}  Guide
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/guides/{guideID} [put]
func (h *Handler) UpdateGuide(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("guideID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid guide ID"})
		return
	}

	var req SaveGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	g, err := h.repo.Update(c.Request.Context(), id, &Guide{
		Title:       req.Title,
		Description: req.Description,
		Equipment:   req.Equipment,
		VideoURL:    req.VideoURL,
		ImageURL:    req.ImageURL,
	})
	if errors.Is(err, ErrGuideNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Guide not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update guide"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// DeleteGuide godoc
// @Summary      Delete workout guide
// @Tags         guides
// @Security     BearerAuth
// @Produce      json
// @Param        guideID  path      int  true  "Guide ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/guides/{guideID} [delete]
func (h *Handler) DeleteGuide(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("guideID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid guide ID"})
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrGuideNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Guide not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete guide"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Guide deleted"})
}
