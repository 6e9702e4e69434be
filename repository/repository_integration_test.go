package repository

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"testing"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/config"
	"boutique-tailoring/database"
	"boutique-tailoring/models"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestRepository connects to the database named by TEST_MYSQL_DSN and
// applies the migrations. Tests are skipped when it is unset.
func openTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}
	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(parsed.Addr)
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	cfg := config.DBConfig{Host: host, Port: portNum, User: parsed.User, Password: parsed.Passwd, Database: parsed.DBName}
	_, err = database.MigrateUp(cfg)
	require.NoError(t, err)

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func seedStore(t *testing.T, r *Repository) (int64, string) {
	t.Helper()
	code := "T" + uuid.New().String()[:8]
	id, err := r.CreateStore(context.Background(), models.StoreInput{
		StoreName: "Test store", StoreCode: models.FlexString(code), AddressLine1: "1 Main St",
		City: "Kochi", State: "Kerala", Country: "India", Pincode: "682001",
	}.Store())
	require.NoError(t, err)
	return id, code
}

func countRows(t *testing.T, r *Repository, table string) int {
	t.Helper()
	var n int
	require.NoError(t, r.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestTransactCommitsOrder(t *testing.T) {
	r := openTestRepository(t)
	ctx := context.Background()
	storeID, code := seedStore(t, r)

	var orderID int64
	err := r.Transact(ctx, func(tx Tx) error {
		customerID, err := tx.InsertCustomer(ctx, models.Customer{FullName: "Asha", Phone: "9876543210", StoreID: storeID})
		if err != nil {
			return err
		}
		orderID, err = tx.InsertOrder(ctx, models.Order{
			CustomerID: customerID, OrderTakenBy: 1, AssignedTo: 2, StoreID: storeID,
			TakenDate: "2024-05-01", Status: models.StatusPending,
			TotalAmount: decimal.NewFromInt(800), Advance: decimal.NewFromInt(200), BalanceAmount: decimal.NewFromInt(600),
		})
		if err != nil {
			return err
		}
		pid, err := tx.InsertParticular(ctx, models.Particular{OrderID: orderID, Description: "Blouse", Price: decimal.NewFromInt(500), Status: models.StatusPending})
		if err != nil {
			return err
		}
		if _, err := tx.InsertOrderImage(ctx, models.OrderImage{ParticularID: pid, ImageURL: "x.jpg"}); err != nil {
			return err
		}
		l := "40"
		mid, err := tx.InsertMeasurement(ctx, models.Measurement{OrderID: orderID, L: &l})
		if err != nil {
			return err
		}
		if err := tx.InsertSleeveMeasurement(ctx, models.SleeveMeasurement{MeasurementID: mid, Position: 0, L: &l}); err != nil {
			return err
		}
		got, err := tx.StoreCode(ctx, storeID)
		if err != nil {
			return err
		}
		return tx.SetOrderInvoice(ctx, orderID, got+"_0001")
	})
	require.NoError(t, err)

	details, err := r.GetOrderDetails(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "800", details.Total.String())
	assert.Equal(t, "600", details.Balance.String())
	require.Len(t, details.Particulars, 1)
	assert.Equal(t, []string{"x.jpg"}, details.Particulars[0].Images)
	require.NotNil(t, details.Measurements)
	assert.Len(t, details.Measurements.SL, 1)
	assert.Empty(t, details.Measurements.Others)
	require.NotNil(t, details.Order.Invoice)
	assert.Equal(t, code+"_0001", *details.Order.Invoice)
}

func TestTransactRollsBackOnError(t *testing.T) {
	r := openTestRepository(t)
	ctx := context.Background()
	storeID, _ := seedStore(t, r)
	before := countRows(t, r, "customers")

	boom := errors.New("boom")
	err := r.Transact(ctx, func(tx Tx) error {
		if _, err := tx.InsertCustomer(ctx, models.Customer{FullName: "Ravi", Phone: "1", StoreID: storeID}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, countRows(t, r, "customers"))
}

func TestTransactRollsBackOnPanic(t *testing.T) {
	r := openTestRepository(t)
	ctx := context.Background()
	storeID, _ := seedStore(t, r)
	before := countRows(t, r, "customers")

	assert.Panics(t, func() {
		_ = r.Transact(ctx, func(tx Tx) error {
			_, _ = tx.InsertCustomer(ctx, models.Customer{FullName: "Ravi", Phone: "1", StoreID: storeID})
			panic("unexpected")
		})
	})
	assert.Equal(t, before, countRows(t, r, "customers"))
}

func TestStoreConstraints(t *testing.T) {
	r := openTestRepository(t)
	ctx := context.Background()
	storeID, code := seedStore(t, r)

	_, err := r.CreateStore(ctx, models.StoreInput{
		StoreName: "Dup", StoreCode: models.FlexString(code), AddressLine1: "x",
		City: "x", State: "x", Country: "x", Pincode: "x",
	}.Store())
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = r.Transact(ctx, func(tx Tx) error {
		_, err := tx.InsertCustomer(ctx, models.Customer{FullName: "Nobody", Phone: "1", StoreID: storeID + 100000})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	_, err = r.GetOrderDetails(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, r.UpdateOrderField(ctx, 0, "status", "completed"), apperrors.ErrNotFound)
	require.NoError(t, r.DeleteStore(ctx, storeID))
	require.NoError(t, r.DeleteStore(ctx, storeID))
}
