package controllers

import (
	"context"
	"net/http"
	"strings"

	"boutique-tailoring/models"

	"github.com/gin-gonic/gin"
)

type PurchaseService interface {
	CreatePurchase(ctx context.Context, req *models.CreatePurchaseRequest) (models.CreatePurchaseResult, error)
	ListPurchases(ctx context.Context, f models.PurchaseFilter) (models.PurchasePage, error)
}

func CreatePurchase(svc PurchaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreatePurchaseRequest
		if err := decodeJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		res, err := svc.CreatePurchase(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success":         true,
			"message":         "Purchase created successfully",
			"purchase_id":     res.PurchaseID,
			"invoice_number":  res.InvoiceNumber,
			"measurement_ids": res.MeasurementIDs,
		})
	}
}

func ViewPurchases(svc PurchaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.ListPurchases(c.Request.Context(), models.PurchaseFilter{
			Search: strings.TrimSpace(c.Query("search")),
			Status: strings.TrimSpace(c.Query("status")),
			Page:   queryInt(c, "page"),
			Limit:  queryInt(c, "limit"),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Purchases fetched successfully",
			"data":       page.Purchases,
			"pagination": page.Pagination,
		})
	}
}
