package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/helpers"
	"boutique-tailoring/logger"
	"boutique-tailoring/models"
	"boutique-tailoring/uploads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = uploads.Policy{MaxSize: 5 << 20, AllowedTypes: []string{"jpg", "jpeg", "png", "gif"}}

func newOrderService(t *testing.T) (*OrderService, *memDB, *recordedEvents, string) {
	t.Helper()
	root := t.TempDir()
	db := newMemDB()
	events := &recordedEvents{}
	files := uploads.NewStore(root, testPolicy).Sub("orders")
	return NewOrderService(db, files, events, logger.Discard()), db, events, root
}

func sampleOrder() *models.CreateOrderRequest {
	advance := models.NewNumber(200)
	sl := models.FlexString("20")
	length := models.FlexString("38")
	return &models.CreateOrderRequest{
		Customer:     &models.CustomerInput{FullName: "Asha", Phone: "9876543210", StoreID: 1, WhatsappSame: true},
		OrderTakenBy: &models.MasterRef{MasterID: 2},
		AssignedTo:   &models.MasterRef{MasterID: 3},
		Dates:        &models.OrderDates{TakenDate: "2026-10-14", DeliveryDate: "2026-10-20"},
		Particulars: []models.ParticularInput{
			{Description: "Blouse", Price: models.NewNumber(500)},
			{Description: "Skirt", Price: models.NewNumber(300), Status: "in_progress"},
		},
		Measurements: &models.MeasurementInput{
			L:  &length,
			SL: models.SleeveList{{L: &sl}},
		},
		Advance: &advance,
	}
}

func TestOrderInvoiceNumber(t *testing.T) {
	assert.Equal(t, "S1_0007", OrderInvoiceNumber("S1", 7))
	assert.Equal(t, "S1_12345", OrderInvoiceNumber("S1", 12345))
}

func TestPurchaseInvoiceNumber(t *testing.T) {
	date := time.Date(2026, time.October, 4, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "S104102642", PurchaseInvoiceNumber("S1", date, 42))
}

func TestCreateOrderComputesTotals(t *testing.T) {
	svc, db, events, _ := newOrderService(t)

	res, err := svc.CreateOrder(context.Background(), sampleOrder(), nil)
	require.NoError(t, err)

	require.Len(t, db.state.orders, 1)
	order := db.state.orders[0]
	assert.Equal(t, res.OrderID, order.ID)
	assert.Equal(t, "800", order.TotalAmount.String())
	assert.Equal(t, "200", order.Advance.String())
	assert.Equal(t, "600", order.BalanceAmount.String())
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, fmt.Sprintf("S1_%04d", res.OrderID), res.InvoiceNumber)
	require.NotNil(t, order.Invoice)
	assert.Equal(t, res.InvoiceNumber, *order.Invoice)

	require.Len(t, db.state.customers, 1)
	require.NotNil(t, db.state.customers[0].Whatsapp)
	assert.Equal(t, "9876543210", *db.state.customers[0].Whatsapp)

	require.Len(t, db.state.particulars, 2)
	assert.Equal(t, models.StatusPending, db.state.particulars[0].Status)
	assert.Equal(t, models.StatusInProgress, db.state.particulars[1].Status)

	require.Len(t, db.state.measurements, 1)
	require.Len(t, db.state.sleeves, 1)
	assert.Equal(t, 0, db.state.sleeves[0].Position)
	assert.Equal(t, db.state.measurements[0].ID, db.state.sleeves[0].MeasurementID)

	require.Len(t, events.events, 1)
	assert.Equal(t, models.EventNewOrder, events.events[0].Name)
	assert.Equal(t, int64(3), events.events[0].MasterID)
}

func TestCreateOrderValidationWritesNothing(t *testing.T) {
	svc, db, events, _ := newOrderService(t)
	req := sampleOrder()
	req.Customer.Phone = ""
	req.Dates = nil

	_, err := svc.CreateOrder(context.Background(), req, nil)
	ve, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Errors, 2)

	assert.Zero(t, db.transactions)
	assert.Empty(t, db.state.customers)
	assert.Empty(t, db.state.orders)
	assert.Empty(t, events.events)
}

func TestCreateOrderDuplicateSubmission(t *testing.T) {
	svc, db, _, _ := newOrderService(t)

	first, err := svc.CreateOrder(context.Background(), sampleOrder(), nil)
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), sampleOrder(), nil)
	require.NoError(t, err)

	assert.Len(t, db.state.customers, 2)
	assert.Len(t, db.state.orders, 2)
	assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
}

func TestCreateOrderFiltersImages(t *testing.T) {
	svc, db, _, root := newOrderService(t)
	files := models.ParticularFiles{
		0: {textFile("x.exe", "MZ"), textFile("x.jpg", "jpeg-bytes")},
	}

	res, err := svc.CreateOrder(context.Background(), sampleOrder(), files)
	require.NoError(t, err)

	require.Len(t, db.state.images, 1)
	img := db.state.images[0]
	particularID := db.state.particulars[0].ID
	assert.Equal(t, particularID, img.ParticularID)
	assert.True(t, strings.HasPrefix(img.ImageURL, fmt.Sprintf("%d/particulars/%d/", res.OrderID, particularID)))
	assert.True(t, strings.HasSuffix(img.ImageURL, ".jpg"))

	data, err := os.ReadFile(filepath.Join(root, "orders", filepath.FromSlash(img.ImageURL)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	entries, err := os.ReadDir(filepath.Join(root, "orders", fmt.Sprint(res.OrderID), "particulars", fmt.Sprint(particularID)))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateOrderRollbackRemovesFiles(t *testing.T) {
	svc, db, events, root := newOrderService(t)
	db.failOn = "InsertMeasurement"
	files := models.ParticularFiles{0: {textFile("x.jpg", "jpeg-bytes")}}

	_, err := svc.CreateOrder(context.Background(), sampleOrder(), files)
	require.Error(t, err)

	assert.Empty(t, db.state.customers)
	assert.Empty(t, db.state.orders)
	assert.Empty(t, db.state.images)
	assert.Empty(t, events.events)

	var stored []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			stored = append(stored, path)
		}
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCreateOrderUnknownStore(t *testing.T) {
	svc, db, _, _ := newOrderService(t)
	req := sampleOrder()
	req.Customer.StoreID = 9

	_, err := svc.CreateOrder(context.Background(), req, nil)
	assert.ErrorIs(t, err, apperrors.ErrStoreCodeNotFound)
	assert.Empty(t, db.state.orders)
}

func TestCreateOrderSkipsEmptyMeasurements(t *testing.T) {
	svc, db, _, _ := newOrderService(t)
	req := sampleOrder()
	req.Measurements = &models.MeasurementInput{}

	_, err := svc.CreateOrder(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Empty(t, db.state.measurements)
}

func TestListOrdersAppliesDefaults(t *testing.T) {
	svc, db, _, _ := newOrderService(t)

	page, err := svc.ListOrders(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, db.orderFilter.Page)
	assert.Equal(t, 10, db.orderFilter.Limit)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 10, Total: 23, Pages: 3}, page.Pagination)
	assert.NotNil(t, page.Orders)
}

func TestUpdateOrderField(t *testing.T) {
	svc, db, events, _ := newOrderService(t)
	res, err := svc.CreateOrder(context.Background(), sampleOrder(), nil)
	require.NoError(t, err)
	id := models.FlexID(res.OrderID)

	require.NoError(t, svc.UpdateOrderField(context.Background(), &models.UpdateOrderFieldRequest{OrderID: id, Field: "status", Value: "delivered"}))
	require.NoError(t, svc.UpdateOrderField(context.Background(), &models.UpdateOrderFieldRequest{OrderID: id, Field: "assigned_to", Value: "5"}))
	assert.Equal(t, []string{"status=delivered", "assigned_to=5"}, db.fieldUpdates)

	require.Len(t, events.events, 3)
	assert.Equal(t, models.EventOrderStatus, events.events[1].Name)
	assert.Equal(t, models.EventOrderAssigned, events.events[2].Name)
	assert.Equal(t, int64(5), events.events[2].MasterID)

	err = svc.UpdateOrderField(context.Background(), &models.UpdateOrderFieldRequest{OrderID: id, Field: "status", Value: "lost"})
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)

	err = svc.UpdateOrderField(context.Background(), &models.UpdateOrderFieldRequest{OrderID: id, Field: "total_amount", Value: "1"})
	_, ok = apperrors.AsValidation(err)
	assert.True(t, ok)

	err = svc.UpdateOrderField(context.Background(), &models.UpdateOrderFieldRequest{OrderID: 999, Field: "status", Value: "pending"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func newPurchaseService(t *testing.T) (*PurchaseService, *memDB, string) {
	t.Helper()
	root := t.TempDir()
	db := newMemDB()
	svc := NewPurchaseService(db, uploads.NewStore(root, testPolicy), logger.Discard())
	svc.now = func() time.Time { return time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC) }
	return svc, db, root
}

func samplePurchase() *models.CreatePurchaseRequest {
	photo := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	return &models.CreatePurchaseRequest{
		Customer: &models.PurchaseCustomerInput{Name: "Ravi", Phone: "9876543210", StoreID: 1},
		Measurements: []models.PurchaseMeasurementInput{
			{Name: "Kurta", BodyMeasures: models.BodyMeasures{Length: models.NewNumber(40.5)}, Photos: []string{photo, "not-a-data-uri"}},
		},
		Payment:     &models.PaymentInput{TotalAmount: models.NewNumber(1500), Advance: models.NewNumber(500)},
		Assignments: []models.AssignmentInput{{MasterID: 3}},
	}
}

func TestCreatePurchase(t *testing.T) {
	svc, db, root := newPurchaseService(t)

	res, err := svc.CreatePurchase(context.Background(), samplePurchase())
	require.NoError(t, err)

	require.Len(t, db.state.customers, 1)
	customerID := db.state.customers[0].ID
	assert.Equal(t, fmt.Sprintf("S1141026%d", customerID), res.InvoiceNumber)

	require.Len(t, db.state.purchases, 1)
	p := db.state.purchases[0]
	assert.Equal(t, "1000", p.BalanceAmount.String())
	assert.Equal(t, models.DefaultPaymentMethod, p.PaymentMethod)
	assert.Equal(t, "pending", p.Status)

	require.Len(t, res.MeasurementIDs, 1)
	assert.Equal(t, [][2]int64{{res.PurchaseID, res.MeasurementIDs[0]}}, db.state.links)

	require.Len(t, db.state.photos, 1)
	assert.True(t, strings.HasPrefix(db.state.photos[0].PhotoPath, fmt.Sprintf("measurements/%d/", res.MeasurementIDs[0])))
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(db.state.photos[0].PhotoPath)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.Len(t, db.state.assignments, 1)
	assert.Equal(t, "2026-10-14", db.state.assignments[0].InDate)
	assert.Nil(t, db.state.assignments[0].OutDate)
}

func TestCreatePurchaseRequiresTotal(t *testing.T) {
	svc, db, _ := newPurchaseService(t)
	req := samplePurchase()
	req.Payment.TotalAmount = models.Number{}

	_, err := svc.CreatePurchase(context.Background(), req)
	ve, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Total amount is required", ve.Errors[0].Message)
	assert.Zero(t, db.transactions)
}

func TestCreatePurchaseUnknownStoreRollsBack(t *testing.T) {
	svc, db, root := newPurchaseService(t)
	req := samplePurchase()
	req.Customer.StoreID = 4

	_, err := svc.CreatePurchase(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrStoreCodeNotFound)
	assert.Empty(t, db.state.customers)
	assert.Empty(t, db.state.sheets)

	entries, err := os.ReadDir(filepath.Join(root, "measurements"))
	require.NoError(t, err)
	for _, e := range entries {
		inner, err := os.ReadDir(filepath.Join(root, "measurements", e.Name()))
		require.NoError(t, err)
		assert.Empty(t, inner)
	}
}

func TestNotificationsWithoutInbox(t *testing.T) {
	hub := &recordingHub{}
	svc := NewNotificationService(hub, nil, logger.Discard())

	svc.Publish(context.Background(), Event{Name: models.EventNewOrder, OrderID: 1, MasterID: 3})
	assert.Equal(t, []string{models.EventNewOrder}, hub.events)

	_, err := svc.ListForMaster(context.Background(), 3, false)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.ErrorIs(t, svc.MarkRead(context.Background(), "x"), apperrors.ErrUnavailable)
}

func TestNotificationsInbox(t *testing.T) {
	store := &memNotifications{}
	svc := NewNotificationService(&recordingHub{}, store, logger.Discard())

	svc.Publish(context.Background(), Event{Name: models.EventNewOrder, OrderID: 1, MasterID: 3, Message: "hello"})
	svc.Publish(context.Background(), Event{Name: models.EventOrderStatus, OrderID: 1})
	require.Len(t, store.items, 1)

	list, err := svc.ListForMaster(context.Background(), 3, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hello", list[0].Message)

	require.NoError(t, svc.MarkRead(context.Background(), list[0].NotificationID))
	list, err = svc.ListForMaster(context.Background(), 3, true)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotificationStoredAfterRequestCancelled(t *testing.T) {
	store := &memNotifications{}
	svc := NewNotificationService(&recordingHub{}, store, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Publish(ctx, Event{Name: models.EventNewOrder, OrderID: 1, MasterID: 3})

	require.Len(t, store.items, 1)
	assert.Equal(t, int64(3), store.items[0].UserID)
}

func TestCreateMaster(t *testing.T) {
	repo := &memMasters{}
	svc := NewMasterService(repo, uploads.NewStore(t.TempDir(), testPolicy), logger.Discard())
	in := &models.MasterInput{Email: "tailor@example.com", Password: "long-enough", FirstName: "Mani", LastName: "K"}

	id, err := svc.CreateMaster(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "active", repo.masters[0].Status)
	assert.Equal(t, "user", repo.masters[0].Role)
	assert.True(t, helpers.VerifyPassword(repo.masters[0].Password, "long-enough"))

	_, err = svc.CreateMaster(context.Background(), in, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.CreateMaster(context.Background(), &models.MasterInput{Email: "b@example.com", Password: "long-enough", FirstName: "A", LastName: "B"}, &models.Attachment{Filename: "me.exe"})
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
}

func TestUpdateMasterNeedsFields(t *testing.T) {
	repo := &memMasters{masters: []models.Master{{ID: 1, FirstName: "Old"}}}
	svc := NewMasterService(repo, uploads.NewStore(t.TempDir(), testPolicy), logger.Discard())

	_, err := svc.UpdateMaster(context.Background(), &models.MasterUpdate{ID: 1})
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)

	name := "New"
	m, err := svc.UpdateMaster(context.Background(), &models.MasterUpdate{ID: 1, FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", m.FirstName)
}

func TestLogin(t *testing.T) {
	hash, err := helpers.HashPassword("long-enough")
	require.NoError(t, err)
	repo := &memMasters{masters: []models.Master{{ID: 4, Email: "tailor@example.com", Password: hash, FirstName: "Mani", Role: "admin"}}}
	svc := NewAuthService(repo, helpers.NewTokenMaker("secret", time.Hour))

	res, err := svc.Login(context.Background(), &models.LoginRequest{Email: "tailor@example.com", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.User.ID)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "tailor@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
