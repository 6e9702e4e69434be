package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/helpers"
	"boutique-tailoring/logger"
	"boutique-tailoring/models"
	"boutique-tailoring/repository"
	"boutique-tailoring/uploads"

	"github.com/shopspring/decimal"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type OrderRepository interface {
	Transact(ctx context.Context, fn func(tx repository.Tx) error) error
	GetOrderDetails(ctx context.Context, orderID int64) (models.OrderDetails, error)
	ListOrders(ctx context.Context, f models.OrderFilter) ([]models.OrderSummary, int, error)
	SearchOrders(ctx context.Context, s models.OrderSearch) ([]models.OrderDetails, int, error)
	UpdateOrderField(ctx context.Context, orderID int64, field string, value interface{}) error
	UpdateParticular(ctx context.Context, particularID int64, price decimal.Decimal, status string) error
}

type OrderService struct {
	repo   OrderRepository
	files  *uploads.Store
	events Publisher
	log    *slog.Logger
}

// NewOrderService stores particular images under files, which is expected to
// be the orders directory of the upload root.
func NewOrderService(repo OrderRepository, files *uploads.Store, events Publisher, log *slog.Logger) *OrderService {
	return &OrderService{repo: repo, files: files, events: events, log: log}
}

// CreateOrder persists a customer, the order, its particulars with their
// images and the measurement set in one transaction. Images are looked up in
// files by particular index.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, files models.ParticularFiles) (models.CreateOrderResult, error) {
	log := logger.FromContext(ctx, s.log)

	req.Normalize()
	if err := helpers.Validate(req); err != nil {
		return models.CreateOrderResult{}, err
	}

	var result models.CreateOrderResult
	batch := s.files.NewBatch()
	committed := false
	defer func() {
		if committed {
			return
		}
		if derr := batch.Discard(); derr != nil {
			log.Warn("remove uploaded files failed", slog.String("error", derr.Error()))
		}
	}()

	err := s.repo.Transact(ctx, func(tx repository.Tx) error {
		customerID, err := tx.InsertCustomer(ctx, req.Customer.Customer())
		if err != nil {
			return err
		}
		log.Debug("customer inserted", slog.Int64("customer_id", customerID))

		total := req.Total()
		advance := req.AdvanceAmount()
		order := models.Order{
			CustomerID:    customerID,
			OrderTakenBy:  req.OrderTakenBy.MasterID.Int64(),
			AssignedTo:    req.AssignedTo.MasterID.Int64(),
			StoreID:       req.Customer.StoreID.Int64(),
			TakenDate:     req.Dates.TakenDate.String(),
			DeliveryDate:  req.Dates.DeliveryDate.Ptr(),
			SpecialNote:   req.SpecialNote.Ptr(),
			Advance:       advance,
			TotalAmount:   total,
			BalanceAmount: total.Sub(advance),
			Status:        models.StatusPending,
		}
		orderID, err := tx.InsertOrder(ctx, order)
		if err != nil {
			return err
		}
		log.Debug("order inserted", slog.Int64("order_id", orderID), slog.String("total", total.String()))

		for i, p := range req.Particulars {
			particularID, err := tx.InsertParticular(ctx, models.Particular{
				OrderID:     orderID,
				Description: p.Description.String(),
				Price:       p.Price.Amount(),
				Status:      p.StatusOrDefault(),
			})
			if err != nil {
				return err
			}
			if err := s.storeImages(ctx, tx, batch, orderID, particularID, files[i]); err != nil {
				return err
			}
		}

		if !req.Measurements.Empty() {
			if err := insertMeasurements(ctx, tx, orderID, req.Measurements); err != nil {
				return err
			}
		}

		code, err := tx.StoreCode(ctx, order.StoreID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %d", apperrors.ErrStoreCodeNotFound, order.StoreID)
		}
		if err != nil {
			return err
		}
		invoice := OrderInvoiceNumber(code, orderID)
		if err := tx.SetOrderInvoice(ctx, orderID, invoice); err != nil {
			return err
		}

		result = models.CreateOrderResult{OrderID: orderID, InvoiceNumber: invoice}
		return nil
	})
	if err != nil {
		log.Error("create order failed", slog.String("error", err.Error()))
		return models.CreateOrderResult{}, err
	}

	committed = true

	log.Info("order created",
		slog.Int64("order_id", result.OrderID),
		slog.String("invoice", result.InvoiceNumber),
		slog.Int("images", len(batch.Saved())))

	s.events.Publish(ctx, Event{
		Name:     models.EventNewOrder,
		OrderID:  result.OrderID,
		MasterID: req.AssignedTo.MasterID.Int64(),
		Message:  fmt.Sprintf("New order %s has been assigned to you", result.InvoiceNumber),
		Payload: map[string]interface{}{
			"order_id":      result.OrderID,
			"invoiceNumber": result.InvoiceNumber,
			"assigned_to":   req.AssignedTo.MasterID.Int64(),
		},
	})
	return result, nil
}

// storeImages writes the accepted files of one particular. Files that break
// the upload policy or cannot be written are skipped.
func (s *OrderService) storeImages(ctx context.Context, tx repository.Tx, batch *uploads.Batch, orderID, particularID int64, files []models.Attachment) error {
	if len(files) == 0 {
		return nil
	}
	log := logger.FromContext(ctx, s.log)

	dir := fmt.Sprintf("%d/particulars/%d", orderID, particularID)
	if err := s.files.EnsureDir(dir); err != nil {
		return err
	}

	policy := s.files.Policy()
	for _, f := range files {
		ext, err := policy.Check(f.Filename, f.Size)
		if err != nil {
			log.Warn("image skipped", slog.String("file", f.Filename), slog.String("reason", err.Error()))
			continue
		}
		rc, err := f.Open()
		if err != nil {
			log.Warn("image skipped", slog.String("file", f.Filename), slog.String("reason", err.Error()))
			continue
		}
		rel, err := batch.Save(dir, ext, rc)
		rc.Close()
		if err != nil {
			log.Warn("image skipped", slog.String("file", f.Filename), slog.String("reason", err.Error()))
			continue
		}
		if _, err := tx.InsertOrderImage(ctx, models.OrderImage{ParticularID: particularID, ImageURL: rel}); err != nil {
			return err
		}
	}
	return nil
}

func insertMeasurements(ctx context.Context, tx repository.Tx, orderID int64, m *models.MeasurementInput) error {
	measurementID, err := tx.InsertMeasurement(ctx, m.Measurement(orderID))
	if err != nil {
		return err
	}
	for _, sl := range m.SL {
		if err := tx.InsertSleeveMeasurement(ctx, sl.Sleeve(measurementID)); err != nil {
			return err
		}
	}
	for _, o := range m.Others {
		if o.Name == "" {
			continue
		}
		if err := tx.InsertCustomMeasurement(ctx, o.Custom(measurementID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (models.OrderDetails, error) {
	if orderID <= 0 {
		return models.OrderDetails{}, apperrors.NewValidation("order_id", "Missing required field: order_id")
	}
	return s.repo.GetOrderDetails(ctx, orderID)
}

func (s *OrderService) ListOrders(ctx context.Context, f models.OrderFilter) (models.OrderPage, error) {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	orders, total, err := s.repo.ListOrders(ctx, f)
	if err != nil {
		return models.OrderPage{}, err
	}
	if orders == nil {
		orders = []models.OrderSummary{}
	}
	return models.OrderPage{Orders: orders, Pagination: models.NewPagination(f.Page, f.Limit, total)}, nil
}

func (s *OrderService) SearchOrders(ctx context.Context, q models.OrderSearch) (models.SearchResult, error) {
	for _, st := range q.Statuses {
		if !models.ValidOrderStatus(st) {
			return models.SearchResult{}, apperrors.NewValidation("status", "Invalid status: "+st)
		}
	}
	orders, total, err := s.repo.SearchOrders(ctx, q)
	if err != nil {
		return models.SearchResult{}, err
	}
	if orders == nil {
		orders = []models.OrderDetails{}
	}
	return models.SearchResult{Orders: orders, Total: total}, nil
}

// UpdateOrderField changes the assigned master or the status of an order.
func (s *OrderService) UpdateOrderField(ctx context.Context, req *models.UpdateOrderFieldRequest) error {
	if err := helpers.Validate(req); err != nil {
		return err
	}
	orderID := req.OrderID.Int64()

	var (
		value interface{}
		ev    Event
	)
	switch req.Field {
	case "status":
		status := req.Value.String()
		if !models.ValidOrderStatus(status) {
			return apperrors.NewValidation("value", "Invalid status: "+status)
		}
		value = status
		ev = Event{
			Name:    models.EventOrderStatus,
			OrderID: orderID,
			Payload: map[string]interface{}{"order_id": orderID, "status": status},
		}
	case "assigned_to":
		masterID, err := strconv.ParseInt(req.Value.String(), 10, 64)
		if err != nil || masterID <= 0 {
			return apperrors.NewValidation("value", "assigned_to must be a master id")
		}
		value = masterID
		ev = Event{
			Name:     models.EventOrderAssigned,
			OrderID:  orderID,
			MasterID: masterID,
			Message:  fmt.Sprintf("Order %d has been assigned to you", orderID),
			Payload:  map[string]interface{}{"order_id": orderID, "assigned_to": masterID},
		}
	}

	if err := s.repo.UpdateOrderField(ctx, orderID, req.Field, value); err != nil {
		return err
	}
	s.events.Publish(ctx, ev)
	return nil
}

func (s *OrderService) UpdateParticular(ctx context.Context, req *models.UpdateParticularRequest) error {
	if err := helpers.Validate(req); err != nil {
		return err
	}
	return s.repo.UpdateParticular(ctx, req.ParticularID.Int64(), req.Price.Amount(), req.Status.String())
}
