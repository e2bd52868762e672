package transactions_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dsikea/core/database"
	"dsikea/core/storage"
	"dsikea/core/storage/mocks"
	"dsikea/feature/catalog"
	catalogmodels "dsikea/feature/catalog/models"
	"dsikea/feature/customers"
	customermodels "dsikea/feature/customers/models"
	"dsikea/feature/providers"
	providermodels "dsikea/feature/providers/models"
	"dsikea/feature/transactions"
	"dsikea/feature/transactions/models"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupApp builds a fiber app with the transaction routes over a seeded
// in-memory DB. A mock storage client may be passed to verify archival,
// nil disables it.
func setupApp(t *testing.T, client storage.Client) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalogmodels.Furniture{},
		&customermodels.Customer{},
		&providermodels.Provider{},
		&models.Transaction{},
		&models.TransactionLine{},
	)
	require.NoError(t, err)

	logger := zap.NewNop()
	cat := catalog.NewFeature(db, logger)
	cust := customers.NewFeature(db, logger)
	prov := providers.NewFeature(db, logger)

	require.NoError(t, db.Create(&customermodels.Customer{
		Name: "Ana Torres", Contact: "612345678", Address: "Calle Mayor 1",
		PostalCode: "28001", DNI: testDNI,
	}).Error)
	require.NoError(t, db.Create(&providermodels.Provider{
		Name: "Muebles SA", Contact: "912345678", Address: "Poligono 4",
		PostalCode: "08001", CIF: testCIF,
	}).Error)
	seedFurniture(t, db, "Billy", catalogmodels.MaterialWood, catalogmodels.ColorWhite, "49.99", 8)

	feat := transactions.NewFeature(db, cat.Service(), cust.Service(), prov.Service(),
		client, "archive", logger)

	app := fiber.New()
	require.NoError(t, feat.Load(app))
	return app, db
}

func TestHandleCreateSale(t *testing.T) {
	app, _ := setupApp(t, nil)

	body := `{"type":"Sale","dni":"` + testDNI + `","furniture":[{"name":"Billy","material":"wood","color":"white","quantity":2}]}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var tx models.Transaction
	data, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &tx))
	assert.Equal(t, models.TypeSale, tx.Type)
	assert.Equal(t, "99.98", tx.TotalPrice.StringFixed(2))
}

func TestHandleCreateInsufficientStock(t *testing.T) {
	app, _ := setupApp(t, nil)

	body := `{"type":"Sale","dni":"` + testDNI + `","furniture":[{"name":"Billy","material":"wood","color":"white","quantity":99}]}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleCreateUnknownFurniture(t *testing.T) {
	app, _ := setupApp(t, nil)

	body := `{"type":"Sale","dni":"` + testDNI + `","furniture":[{"name":"Klippan","material":"wood","color":"white","quantity":1}]}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleGetMissingTransaction(t *testing.T) {
	app, _ := setupApp(t, nil)

	req := httptest.NewRequest("GET", "/transactions/nope", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleUpdateImmutableType(t *testing.T) {
	app, _ := setupApp(t, nil)

	body := `{"type":"Sale","dni":"` + testDNI + `","furniture":[{"name":"Billy","material":"wood","color":"white","quantity":1}]}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var tx models.Transaction
	data, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &tx))

	patch := httptest.NewRequest("PATCH", "/transactions/"+tx.ID, strings.NewReader(`{"type":"Purchase"}`))
	patch.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(patch, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleDeleteAllWithoutConfirm(t *testing.T) {
	app, _ := setupApp(t, nil)

	req := httptest.NewRequest("DELETE", "/transactions", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListBadDateRange(t *testing.T) {
	app, _ := setupApp(t, nil)

	req := httptest.NewRequest("GET", "/transactions?idate=2026-01-01", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest("GET", "/transactions?idate=notadate&fdate=2026-01-31", nil)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListTimestampRangeBounds(t *testing.T) {
	app, db := setupApp(t, nil)

	// Seed a transaction well past the queried end instant.
	var customer customermodels.Customer
	require.NoError(t, db.First(&customer, "dni = ?", testDNI).Error)
	tx := models.Transaction{
		Type:       models.TypeSale,
		CustomerID: &customer.ID,
		Date:       time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&tx).Error)

	listTxs := func(query string) []models.Transaction {
		req := httptest.NewRequest("GET", "/transactions?"+query, nil)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var txs []models.Transaction
		data, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(data, &txs))
		return txs
	}

	// An explicit end instant is exact: a transaction dated the next day
	// must not leak into the range.
	txs := listTxs("idate=2024-05-01T00:00:00Z&fdate=2024-05-01T10:00:00Z")
	assert.Empty(t, txs)

	// The end instant itself is still inside the inclusive range.
	txs = listTxs("idate=2024-05-01T00:00:00Z&fdate=2024-05-02T09:00:00Z")
	assert.Len(t, txs, 1)

	// A date-only end still covers the whole closing day.
	txs = listTxs("idate=2024-05-01&fdate=2024-05-02")
	assert.Len(t, txs, 1)
}

func TestHandleCreateArchivesSnapshot(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "archive", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "transactions/") && strings.HasSuffix(name, ".json")
	}), mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	app, _ := setupApp(t, mockClient)

	body := `{"type":"Sale","dni":"` + testDNI + `","furniture":[{"name":"Billy","material":"wood","color":"white","quantity":1}]}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	mockClient.AssertCalled(t, "PutObject", mock.Anything, "archive", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
}
