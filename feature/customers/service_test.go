package customers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"dsikea/core/database"
	"dsikea/feature/customers"
	"dsikea/feature/customers/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCustomers(t *testing.T) *customers.Feature {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}))

	return customers.NewFeature(db, zap.NewNop())
}

func validCustomer() models.Customer {
	return models.Customer{
		Name:       "Ana Torres",
		Contact:    "612345678",
		Address:    "Calle Mayor 1",
		PostalCode: "28001",
		DNI:        "12345678Z",
	}
}

func TestCreateAndGetByDNI(t *testing.T) {
	feat := setupCustomers(t)
	svc := feat.Service()
	ctx := context.Background()

	created, err := svc.Create(ctx, validCustomer())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.GetByDNI(ctx, "12345678Z")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateRejectsBadChecksum(t *testing.T) {
	svc := setupCustomers(t).Service()

	customer := validCustomer()
	customer.DNI = "12345678A"
	_, err := svc.Create(context.Background(), customer)
	assert.ErrorIs(t, err, customers.ErrInvalidCustomer)
}

func TestCreateRejectsDuplicateDNI(t *testing.T) {
	svc := setupCustomers(t).Service()
	ctx := context.Background()

	_, err := svc.Create(ctx, validCustomer())
	require.NoError(t, err)

	dup := validCustomer()
	dup.Name = "Otra Persona"
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, customers.ErrDuplicateDNI)
}

func TestUpdateValidatesPatch(t *testing.T) {
	svc := setupCustomers(t).Service()
	ctx := context.Background()

	created, err := svc.Create(ctx, validCustomer())
	require.NoError(t, err)

	badPhone := "12345"
	_, err = svc.Update(ctx, created.ID, customers.UpdateRequest{Contact: &badPhone})
	assert.ErrorIs(t, err, customers.ErrInvalidCustomer)

	newAddress := "Calle Menor 2"
	updated, err := svc.Update(ctx, created.ID, customers.UpdateRequest{Address: &newAddress})
	require.NoError(t, err)
	assert.Equal(t, "Calle Menor 2", updated.Address)
	assert.Equal(t, "12345678Z", updated.DNI)
}

func TestDeleteByDNI(t *testing.T) {
	svc := setupCustomers(t).Service()
	ctx := context.Background()

	_, err := svc.Create(ctx, validCustomer())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByDNI(ctx, "12345678Z"))
	assert.ErrorIs(t, svc.DeleteByDNI(ctx, "12345678Z"), customers.ErrNotFound)
}

func TestHandlerIdentifierDispatch(t *testing.T) {
	feat := setupCustomers(t)
	svc := feat.Service()

	created, err := svc.Create(context.Background(), validCustomer())
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, feat.Load(app))

	// A DNI-shaped identifier resolves via the registry key.
	req := httptest.NewRequest("GET", "/customers/12345678Z", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Anything else is treated as an internal id.
	req = httptest.NewRequest("GET", "/customers/"+created.ID, nil)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/customers/87654321X", nil)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandlerCreateValidation(t *testing.T) {
	feat := setupCustomers(t)
	app := fiber.New()
	require.NoError(t, feat.Load(app))

	body := `{"name":"Ana","contact":"612345678","address":"Calle Mayor 1","postal_code":"28001","dni":"12345678A"}`
	req := httptest.NewRequest("POST", "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
