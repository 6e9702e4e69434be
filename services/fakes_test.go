package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/models"
	"boutique-tailoring/repository"

	"github.com/shopspring/decimal"
)

// memState is the committed content of the in-memory database.
type memState struct {
	lastID       int64
	customers    []models.Customer
	orders       []models.Order
	particulars  []models.Particular
	images       []models.OrderImage
	measurements []models.Measurement
	sleeves      []models.SleeveMeasurement
	custom       []models.CustomMeasurement
	sheets       []models.CustomerMeasurement
	photos       []models.MeasurementPhoto
	purchases    []models.Purchase
	links        [][2]int64
	assignments  []models.Assignment
}

func (s memState) clone() memState {
	c := s
	c.customers = append([]models.Customer(nil), s.customers...)
	c.orders = append([]models.Order(nil), s.orders...)
	c.particulars = append([]models.Particular(nil), s.particulars...)
	c.images = append([]models.OrderImage(nil), s.images...)
	c.measurements = append([]models.Measurement(nil), s.measurements...)
	c.sleeves = append([]models.SleeveMeasurement(nil), s.sleeves...)
	c.custom = append([]models.CustomMeasurement(nil), s.custom...)
	c.sheets = append([]models.CustomerMeasurement(nil), s.sheets...)
	c.photos = append([]models.MeasurementPhoto(nil), s.photos...)
	c.purchases = append([]models.Purchase(nil), s.purchases...)
	c.links = append([][2]int64(nil), s.links...)
	c.assignments = append([]models.Assignment(nil), s.assignments...)
	return c
}

// memDB is a transactional fake of the relational repository. Work done in
// a failed transaction is thrown away.
type memDB struct {
	mu           sync.Mutex
	state        memState
	storeCodes   map[int64]string
	failOn       string
	transactions int

	fieldUpdates []string
	orderFilter  models.OrderFilter
}

func newMemDB() *memDB {
	return &memDB{storeCodes: map[int64]string{1: "S1"}}
}

func (db *memDB) Transact(ctx context.Context, fn func(tx repository.Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.transactions++

	work := db.state.clone()
	if err := fn(&memTx{db: db, state: &work}); err != nil {
		return err
	}
	db.state = work
	return nil
}

func (db *memDB) GetOrderDetails(ctx context.Context, orderID int64) (models.OrderDetails, error) {
	for _, o := range db.state.orders {
		if o.ID == orderID {
			return models.NewOrderDetails(models.OrderRecord{Order: o}, nil, nil), nil
		}
	}
	return models.OrderDetails{}, fmt.Errorf("order %d: %w", orderID, apperrors.ErrNotFound)
}

func (db *memDB) ListOrders(ctx context.Context, f models.OrderFilter) ([]models.OrderSummary, int, error) {
	db.orderFilter = f
	return nil, 23, nil
}

func (db *memDB) SearchOrders(ctx context.Context, s models.OrderSearch) ([]models.OrderDetails, int, error) {
	return nil, 0, nil
}

func (db *memDB) UpdateOrderField(ctx context.Context, orderID int64, field string, value interface{}) error {
	for _, o := range db.state.orders {
		if o.ID == orderID {
			db.fieldUpdates = append(db.fieldUpdates, fmt.Sprintf("%s=%v", field, value))
			return nil
		}
	}
	return fmt.Errorf("order %d: %w", orderID, apperrors.ErrNotFound)
}

func (db *memDB) UpdateParticular(ctx context.Context, particularID int64, price decimal.Decimal, status string) error {
	db.fieldUpdates = append(db.fieldUpdates, fmt.Sprintf("particular %d=%s/%s", particularID, price, status))
	return nil
}

func (db *memDB) ListPurchases(ctx context.Context, f models.PurchaseFilter) ([]models.PurchaseSummary, int, error) {
	return nil, 0, nil
}

type memTx struct {
	db    *memDB
	state *memState
}

func (t *memTx) step(name string) (int64, error) {
	if t.db.failOn == name {
		return 0, fmt.Errorf("%s: forced failure", name)
	}
	t.state.lastID++
	return t.state.lastID, nil
}

func (t *memTx) InsertCustomer(ctx context.Context, c models.Customer) (int64, error) {
	id, err := t.step("InsertCustomer")
	if err != nil {
		return 0, err
	}
	c.ID = id
	t.state.customers = append(t.state.customers, c)
	return id, nil
}

func (t *memTx) InsertOrder(ctx context.Context, o models.Order) (int64, error) {
	id, err := t.step("InsertOrder")
	if err != nil {
		return 0, err
	}
	o.ID = id
	t.state.orders = append(t.state.orders, o)
	return id, nil
}

func (t *memTx) SetOrderInvoice(ctx context.Context, orderID int64, invoice string) error {
	if _, err := t.step("SetOrderInvoice"); err != nil {
		return err
	}
	for i := range t.state.orders {
		if t.state.orders[i].ID == orderID {
			inv := invoice
			t.state.orders[i].Invoice = &inv
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (t *memTx) InsertParticular(ctx context.Context, p models.Particular) (int64, error) {
	id, err := t.step("InsertParticular")
	if err != nil {
		return 0, err
	}
	p.ID = id
	t.state.particulars = append(t.state.particulars, p)
	return id, nil
}

func (t *memTx) InsertOrderImage(ctx context.Context, img models.OrderImage) (int64, error) {
	id, err := t.step("InsertOrderImage")
	if err != nil {
		return 0, err
	}
	img.ID = id
	t.state.images = append(t.state.images, img)
	return id, nil
}

func (t *memTx) InsertMeasurement(ctx context.Context, m models.Measurement) (int64, error) {
	id, err := t.step("InsertMeasurement")
	if err != nil {
		return 0, err
	}
	m.ID = id
	t.state.measurements = append(t.state.measurements, m)
	return id, nil
}

func (t *memTx) InsertSleeveMeasurement(ctx context.Context, s models.SleeveMeasurement) error {
	if _, err := t.step("InsertSleeveMeasurement"); err != nil {
		return err
	}
	t.state.sleeves = append(t.state.sleeves, s)
	return nil
}

func (t *memTx) InsertCustomMeasurement(ctx context.Context, c models.CustomMeasurement) error {
	if _, err := t.step("InsertCustomMeasurement"); err != nil {
		return err
	}
	t.state.custom = append(t.state.custom, c)
	return nil
}

func (t *memTx) StoreCode(ctx context.Context, storeID int64) (string, error) {
	code, ok := t.db.storeCodes[storeID]
	if !ok {
		return "", fmt.Errorf("store %d code: %w", storeID, apperrors.ErrNotFound)
	}
	return code, nil
}

func (t *memTx) InsertCustomerMeasurement(ctx context.Context, m models.CustomerMeasurement) (int64, error) {
	id, err := t.step("InsertCustomerMeasurement")
	if err != nil {
		return 0, err
	}
	m.ID = id
	t.state.sheets = append(t.state.sheets, m)
	return id, nil
}

func (t *memTx) InsertMeasurementPhoto(ctx context.Context, p models.MeasurementPhoto) error {
	if _, err := t.step("InsertMeasurementPhoto"); err != nil {
		return err
	}
	t.state.photos = append(t.state.photos, p)
	return nil
}

func (t *memTx) InsertPurchase(ctx context.Context, p models.Purchase) (int64, error) {
	id, err := t.step("InsertPurchase")
	if err != nil {
		return 0, err
	}
	p.ID = id
	t.state.purchases = append(t.state.purchases, p)
	return id, nil
}

func (t *memTx) LinkPurchaseMeasurement(ctx context.Context, purchaseID, measurementID int64) error {
	if _, err := t.step("LinkPurchaseMeasurement"); err != nil {
		return err
	}
	t.state.links = append(t.state.links, [2]int64{purchaseID, measurementID})
	return nil
}

func (t *memTx) InsertAssignment(ctx context.Context, a models.Assignment) error {
	if _, err := t.step("InsertAssignment"); err != nil {
		return err
	}
	t.state.assignments = append(t.state.assignments, a)
	return nil
}

type recordedEvents struct {
	events []Event
}

func (r *recordedEvents) Publish(ctx context.Context, ev Event) {
	r.events = append(r.events, ev)
}

type recordingHub struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHub) Broadcast(event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

type memNotifications struct {
	items []models.Notification
}

func (m *memNotifications) Insert(ctx context.Context, n models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.items = append(m.items, n)
	return nil
}

func (m *memNotifications) ListByMaster(ctx context.Context, masterID int64, unreadOnly bool) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range m.items {
		if n.UserID == masterID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(ctx context.Context, notificationID string) error {
	for i := range m.items {
		if m.items[i].NotificationID == notificationID {
			m.items[i].IsRead = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type memMasters struct {
	masters []models.Master
}

func (m *memMasters) CreateMaster(ctx context.Context, master models.Master) (int64, error) {
	master.ID = int64(len(m.masters) + 1)
	m.masters = append(m.masters, master)
	return master.ID, nil
}

func (m *memMasters) MasterEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetMasterByEmail(ctx, email)
	return err == nil, nil
}

func (m *memMasters) ListMasters(ctx context.Context) ([]models.Master, error) {
	return m.masters, nil
}

func (m *memMasters) GetMaster(ctx context.Context, id int64) (models.Master, error) {
	for _, master := range m.masters {
		if master.ID == id {
			return master, nil
		}
	}
	return models.Master{}, apperrors.ErrNotFound
}

func (m *memMasters) GetMasterByEmail(ctx context.Context, email string) (models.Master, error) {
	for _, master := range m.masters {
		if master.Email == email {
			return master, nil
		}
	}
	return models.Master{}, apperrors.ErrNotFound
}

func (m *memMasters) UpdateMaster(ctx context.Context, id int64, columns []string, values []interface{}) error {
	for i := range m.masters {
		if m.masters[i].ID != id {
			continue
		}
		for j, col := range columns {
			if col == "first_name" {
				m.masters[i].FirstName = values[j].(string)
			}
		}
		return nil
	}
	return apperrors.ErrNotFound
}

func (m *memMasters) DeleteMaster(ctx context.Context, id int64) error {
	return nil
}

func textFile(name, content string) models.Attachment {
	return models.Attachment{
		Filename: name,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}
