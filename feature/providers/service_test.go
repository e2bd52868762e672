package providers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"dsikea/core/database"
	"dsikea/feature/providers"
	"dsikea/feature/providers/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupProviders(t *testing.T) *providers.Feature {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Provider{}))

	return providers.NewFeature(db, zap.NewNop())
}

func validProvider() models.Provider {
	return models.Provider{
		Name:       "Muebles SA",
		Contact:    "912345678",
		Address:    "Poligono Industrial 4",
		PostalCode: "08001",
		CIF:        "A58818501",
	}
}

func TestCreateAndGetByCIF(t *testing.T) {
	svc := setupProviders(t).Service()
	ctx := context.Background()

	created, err := svc.Create(ctx, validProvider())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.GetByCIF(ctx, "A58818501")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateRejectsBadChecksum(t *testing.T) {
	svc := setupProviders(t).Service()

	provider := validProvider()
	provider.CIF = "A58818502"
	_, err := svc.Create(context.Background(), provider)
	assert.ErrorIs(t, err, providers.ErrInvalidProvider)
}

func TestCreateRejectsDuplicateCIF(t *testing.T) {
	svc := setupProviders(t).Service()
	ctx := context.Background()

	_, err := svc.Create(ctx, validProvider())
	require.NoError(t, err)

	dup := validProvider()
	dup.Name = "Otra Empresa"
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, providers.ErrDuplicateCIF)
}

func TestDeleteByCIF(t *testing.T) {
	svc := setupProviders(t).Service()
	ctx := context.Background()

	_, err := svc.Create(ctx, validProvider())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByCIF(ctx, "A58818501"))
	assert.ErrorIs(t, svc.DeleteByCIF(ctx, "A58818501"), providers.ErrNotFound)
}

func TestHandlerIdentifierDispatch(t *testing.T) {
	feat := setupProviders(t)

	created, err := feat.Service().Create(context.Background(), validProvider())
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, feat.Load(app))

	// CIF-shaped identifiers resolve via the registry key, others as ids.
	req := httptest.NewRequest("GET", "/providers/A58818501", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/providers/"+created.ID, nil)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/providers/B12345674", nil)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
