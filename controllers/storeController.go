package controllers

import (
	"context"
	"net/http"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/models"

	"github.com/gin-gonic/gin"
)

type StoreService interface {
	CreateStore(ctx context.Context, in *models.StoreInput) (models.Store, error)
	ListStores(ctx context.Context) ([]models.Store, error)
	UpdateStore(ctx context.Context, id int64, in *models.StoreInput) (models.Store, error)
	DeleteStore(ctx context.Context, id int64) error
}

func AddStore(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.StoreInput
		if err := decodeJSON(c, &in); err != nil {
			respondError(c, err)
			return
		}
		store, err := svc.CreateStore(c.Request.Context(), &in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Store added successfully", "store": store})
	}
}

func GetStores(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stores, err := svc.ListStores(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "stores": stores})
	}
}

func UpdateStore(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := requiredQueryID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		var in models.StoreInput
		if err := decodeJSON(c, &in); err != nil {
			respondError(c, err)
			return
		}
		store, err := svc.UpdateStore(c.Request.Context(), id, &in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Store updated successfully", "store": store})
	}
}

func DeleteStore(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := requiredQueryID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.DeleteStore(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Store deleted successfully"})
	}
}

func requiredQueryID(c *gin.Context, key string) (int64, error) {
	id, err := queryID(c, key)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, apperrors.NewValidation(key, "Missing required field: "+key)
	}
	return id, nil
}
