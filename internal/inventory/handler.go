package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zeeddd0107/GymPlify-sub000/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateItem godoc
// @Summary      Add inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateItemRequest  true  "Item data"
// @Success      201      {object}  Item
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /inventory [post]
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	condition := req.Condition
	if condition == "" {
		condition = ConditionGood
	}

	item, err := h.repo.Create(c.Request.Context(), &Item{
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Condition: condition,
		Notes:     req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListItems godoc
// @Summary      List inventory
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Item
// @Failure      500  {object}  api.ErrorResponse
// @Router       /inventory [get]
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetItem godoc
// @Summary      Get inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        itemID  path      int  true  "Item ID"
// @Success      200     {object}  Item
// @Failure      404     {object}  api.ErrorResponse
// @Router       /inventory/{itemID} [get]
func (h *Handler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid item ID"})
		return
	}

	item, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItem godoc
// @Summary      Update inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                true  "Item ID"
// @Param        request  body      UpdateItemRequest  true  "Item data"
// @Success      200      {object}  Item
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /inventory/{itemID} [put]
func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid item ID"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.repo.Update(c.Request.Context(), &Item{
		ID:        id,
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Condition: req.Condition,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary      Delete inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        itemID  path      int  true  "Item ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /inventory/{itemID} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid item ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Item deleted"})
}
