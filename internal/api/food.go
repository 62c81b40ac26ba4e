package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saostartar/diet-recommendation-app/internal/service"
)

// FoodHandler exposes the food catalog. Photo uploads are optional;
// without S3 configured the image endpoint returns 503.
type FoodHandler struct {
	foods  service.IFoodService
	images service.IImageService
}

func NewFoodHandler(foods service.IFoodService, images service.IImageService) *FoodHandler {
	return &FoodHandler{foods: foods, images: images}
}

func (h *FoodHandler) RegisterRoutes(protected *gin.RouterGroup) {
	foods := protected.Group("/foods")
	{
		foods.GET("", h.SearchFoods)
		foods.GET("/:id", h.GetFood)
		foods.POST("/:id/image", h.UploadImage)
	}
}

func (h *FoodHandler) SearchFoods(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	foods, err := h.foods.SearchFoods(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search foods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *FoodHandler) GetFood(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	food, err := h.foods.GetFood(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get food"})
		return
	}

	c.JSON(http.StatusOK, food)
}

func (h *FoodHandler) UploadImage(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}
	if _, err := h.foods.GetFood(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get food"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds size limit"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	url, err := h.images.UploadFoodImage(c.Request.Context(), id, data, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}
	if err := h.foods.AttachImage(c.Request.Context(), id, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image url"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
