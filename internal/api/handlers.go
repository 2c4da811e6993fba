package api

import (
	"net/http"
	"strconv"

	"item-store/internal/service"

	"github.com/gin-gonic/gin"
)

type itemHandlers struct {
	items *service.ItemService
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handleInvalidID(c)
		return 0, false
	}
	return id, true
}

func (h *itemHandlers) create(c *gin.Context) {
	var in service.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		handleBindError(c, err)
		return
	}

	item, err := h.items.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *itemHandlers) read(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.items.Read(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *itemHandlers) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in service.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		handleBindError(c, err)
		return
	}

	item, err := h.items.Update(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *itemHandlers) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": service.DeletedMessage})
}
