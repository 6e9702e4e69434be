package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/helpers"
	"boutique-tailoring/logger"
	"boutique-tailoring/models"
	"boutique-tailoring/repository"
	"boutique-tailoring/uploads"
)

type PurchaseRepository interface {
	Transact(ctx context.Context, fn func(tx repository.Tx) error) error
	ListPurchases(ctx context.Context, f models.PurchaseFilter) ([]models.PurchaseSummary, int, error)
}

type PurchaseService struct {
	repo  PurchaseRepository
	files *uploads.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewPurchaseService stores measurement photos under files, normally the
// upload root.
func NewPurchaseService(repo PurchaseRepository, files *uploads.Store, log *slog.Logger) *PurchaseService {
	return &PurchaseService{repo: repo, files: files, log: log, now: time.Now}
}

func (s *PurchaseService) CreatePurchase(ctx context.Context, req *models.CreatePurchaseRequest) (models.CreatePurchaseResult, error) {
	log := logger.FromContext(ctx, s.log)

	if err := helpers.Validate(req); err != nil {
		return models.CreatePurchaseResult{}, err
	}
	total := req.Payment.TotalAmount.Amount()
	if !total.IsPositive() {
		return models.CreatePurchaseResult{}, apperrors.NewValidation("payment.total_amount", "Total amount is required")
	}
	advance := req.Payment.Advance.Amount()
	method := req.Payment.PaymentMethod.String()
	if method == "" {
		method = models.DefaultPaymentMethod
	}
	today := s.now()

	result := models.CreatePurchaseResult{MeasurementIDs: []int64{}}
	batch := s.files.NewBatch()
	committed := false
	defer func() {
		if committed {
			return
		}
		if derr := batch.Discard(); derr != nil {
			log.Warn("remove uploaded photos failed", slog.String("error", derr.Error()))
		}
	}()

	err := s.repo.Transact(ctx, func(tx repository.Tx) error {
		customer := req.Customer.Customer()
		customerID, err := tx.InsertCustomer(ctx, customer)
		if err != nil {
			return err
		}

		for _, m := range req.Measurements {
			measurementID, err := tx.InsertCustomerMeasurement(ctx, m.Sheet(customerID))
			if err != nil {
				return err
			}
			if err := s.storePhotos(ctx, tx, batch, measurementID, m.Photos); err != nil {
				return err
			}
			result.MeasurementIDs = append(result.MeasurementIDs, measurementID)
		}

		code, err := tx.StoreCode(ctx, customer.StoreID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %d", apperrors.ErrStoreCodeNotFound, customer.StoreID)
		}
		if err != nil {
			return err
		}
		invoice := PurchaseInvoiceNumber(code, today, customerID)

		purchaseID, err := tx.InsertPurchase(ctx, models.Purchase{
			CustomerID:    customerID,
			TotalAmount:   total,
			AdvanceAmount: advance,
			BalanceAmount: total.Sub(advance),
			PaymentMethod: method,
			Status:        "pending",
			InvoiceNumber: invoice,
		})
		if err != nil {
			return err
		}
		for _, id := range result.MeasurementIDs {
			if err := tx.LinkPurchaseMeasurement(ctx, purchaseID, id); err != nil {
				return err
			}
		}

		for _, a := range req.Assignments {
			inDate := a.InDate.String()
			if inDate == "" {
				inDate = today.Format("2006-01-02")
			}
			if err := tx.InsertAssignment(ctx, models.Assignment{
				PurchaseID: purchaseID,
				MasterID:   a.MasterID.Int64(),
				InDate:     inDate,
				OutDate:    a.OutDate.Ptr(),
			}); err != nil {
				return err
			}
		}

		result.PurchaseID = purchaseID
		result.InvoiceNumber = invoice
		return nil
	})
	if err != nil {
		log.Error("create purchase failed", slog.String("error", err.Error()))
		return models.CreatePurchaseResult{}, err
	}

	committed = true

	log.Info("purchase created",
		slog.Int64("purchase_id", result.PurchaseID),
		slog.String("invoice", result.InvoiceNumber),
		slog.Int("measurements", len(result.MeasurementIDs)))
	return result, nil
}

func (s *PurchaseService) storePhotos(ctx context.Context, tx repository.Tx, batch *uploads.Batch, measurementID int64, photos []string) error {
	if len(photos) == 0 {
		return nil
	}
	log := logger.FromContext(ctx, s.log)

	dir := fmt.Sprintf("measurements/%d", measurementID)
	if err := s.files.EnsureDir(dir); err != nil {
		return err
	}
	for i, uri := range photos {
		rel, err := batch.SaveDataURI(dir, uri)
		if err != nil {
			log.Warn("photo skipped", slog.Int64("measurement_id", measurementID), slog.Int("index", i), slog.String("reason", err.Error()))
			continue
		}
		if err := tx.InsertMeasurementPhoto(ctx, models.MeasurementPhoto{MeasurementID: measurementID, PhotoPath: rel}); err != nil {
			return err
		}
	}
	return nil
}

func (s *PurchaseService) ListPurchases(ctx context.Context, f models.PurchaseFilter) (models.PurchasePage, error) {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	purchases, total, err := s.repo.ListPurchases(ctx, f)
	if err != nil {
		return models.PurchasePage{}, err
	}
	if purchases == nil {
		purchases = []models.PurchaseSummary{}
	}
	p := models.NewPagination(f.Page, f.Limit, total)
	return models.PurchasePage{
		Purchases: purchases,
		Pagination: models.PurchasePagination{
			CurrentPage: p.Page,
			PerPage:     p.Limit,
			TotalItems:  p.Total,
			TotalPages:  p.Pages,
		},
	}, nil
}
