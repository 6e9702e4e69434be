package controllers

import (
	"context"
	"net/http"
	"strings"

	"boutique-tailoring/helpers"
	"boutique-tailoring/models"

	"github.com/gin-gonic/gin"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest, files models.ParticularFiles) (models.CreateOrderResult, error)
	GetOrder(ctx context.Context, orderID int64) (models.OrderDetails, error)
	ListOrders(ctx context.Context, f models.OrderFilter) (models.OrderPage, error)
	SearchOrders(ctx context.Context, q models.OrderSearch) (models.SearchResult, error)
	UpdateOrderField(ctx context.Context, req *models.UpdateOrderFieldRequest) error
	UpdateParticular(ctx context.Context, req *models.UpdateParticularRequest) error
}

// CreateOrder accepts a JSON body or a multipart form with bracketed keys
// and particulars[i][images][j] files.
func CreateOrder(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateOrderRequest
		files := models.ParticularFiles{}

		if isMultipart(c) {
			form, err := c.MultipartForm()
			if err != nil {
				respondError(c, badRequest("invalid multipart form: %v", err))
				return
			}
			body, err := helpers.NestForm(form.Value)
			if err != nil {
				respondError(c, err)
				return
			}
			if err := decodeBytes(body, &req); err != nil {
				respondError(c, err)
				return
			}
			files = helpers.ParticularImages(form.Value, form.File)
		} else if err := decodeJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}

		res, err := svc.CreateOrder(c.Request.Context(), &req, files)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success":       true,
			"message":       "Order created successfully",
			"order_id":      res.OrderID,
			"invoiceNumber": res.InvoiceNumber,
			"errors":        noErrors,
		})
	}
}

// GetOrder reads order_id from the query string or, for POST, the body.
func GetOrder(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := queryID(c, "order_id")
		if err != nil {
			respondError(c, err)
			return
		}
		if orderID == 0 && c.Request.Method == http.MethodPost {
			var body struct {
				OrderID models.FlexID `json:"order_id"`
			}
			if err := decodeJSON(c, &body); err != nil {
				respondError(c, err)
				return
			}
			orderID = body.OrderID.Int64()
		}

		order, err := svc.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order fetched successfully", "order": order, "errors": noErrors})
	}
}

func GetOrders(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := queryID(c, "store")
		if err != nil {
			respondError(c, err)
			return
		}
		assignedTo, err := queryID(c, "assigned_to")
		if err != nil {
			respondError(c, err)
			return
		}
		_, pending := c.GetQuery("pendingstatus")

		page, err := svc.ListOrders(c.Request.Context(), models.OrderFilter{
			Page:         queryInt(c, "page"),
			Limit:        queryInt(c, "limit"),
			CustomerName: strings.TrimSpace(c.Query("customer_name")),
			Phone:        strings.TrimSpace(c.Query("phone")),
			TakenDate:    strings.TrimSpace(c.Query("taken_date")),
			DeliveryDate: strings.TrimSpace(c.Query("delivery_date")),
			Invoice:      strings.TrimSpace(c.Query("invoice")),
			Status:       strings.TrimSpace(c.Query("status")),
			StoreID:      store,
			AssignedTo:   assignedTo,
			PendingOnly:  pending,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Orders fetched successfully",
			"orders":     page.Orders,
			"pagination": page.Pagination,
			"errors":     noErrors,
		})
	}
}

// GetCustomerData searches orders and returns them in the nested shape.
func GetCustomerData(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := models.OrderSearch{
			Statuses:         queryList(c, "status"),
			CustomerName:     strings.TrimSpace(c.Query("customer_name")),
			CustomerPhone:    strings.TrimSpace(c.Query("customer_phone")),
			TakenDateFrom:    c.Query("taken_date_from"),
			TakenDateTo:      c.Query("taken_date_to"),
			DeliveryDateFrom: c.Query("delivery_date_from"),
			DeliveryDateTo:   c.Query("delivery_date_to"),
			Page:             queryInt(c, "page"),
			PerPage:          queryInt(c, "per_page"),
		}
		var err error
		if q.StoreIDs, err = queryIDList(c, "store_ids"); err != nil {
			respondError(c, err)
			return
		}
		if q.TakenBy, err = queryIDList(c, "taken_by"); err != nil {
			respondError(c, err)
			return
		}
		if q.AssignedTo, err = queryIDList(c, "assigned_to"); err != nil {
			respondError(c, err)
			return
		}

		res, err := svc.SearchOrders(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Orders fetched successfully",
			"orders":  res.Orders,
			"total":   res.Total,
			"errors":  noErrors,
		})
	}
}

func UpdateOrderField(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateOrderFieldRequest
		if err := decodeJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		if err := svc.UpdateOrderField(c.Request.Context(), &req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order updated successfully", "errors": noErrors})
	}
}

func UpdateParticular(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateParticularRequest
		if err := decodeJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		if err := svc.UpdateParticular(c.Request.Context(), &req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Particular updated successfully", "errors": noErrors})
	}
}
