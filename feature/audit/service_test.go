package audit_test

import (
	"context"
	"testing"
	"time"

	"dsikea/core/database"
	"dsikea/feature/audit"
	catalogmodels "dsikea/feature/catalog/models"
	txmodels "dsikea/feature/transactions/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalogmodels.Furniture{},
		&txmodels.Transaction{},
		&txmodels.TransactionLine{},
	)
	require.NoError(t, err)
	return db
}

func TestAuditCleanDatabase(t *testing.T) {
	db := setupDB(t)
	svc := audit.NewService(db, zap.NewNop())

	customerID := "cust-1"
	price := decimal.RequireFromString("49.99")
	tx := txmodels.Transaction{
		Type:       txmodels.TypeSale,
		CustomerID: &customerID,
		Lines: []txmodels.TransactionLine{
			{FurnitureID: "f-1", Quantity: 2, UnitPrice: price},
		},
		Date: time.Now().UTC(),
	}
	tx.TotalPrice = tx.LinesTotal()
	require.NoError(t, db.Create(&tx).Error)

	require.NoError(t, db.Create(&catalogmodels.Furniture{
		Name: "Billy", Description: "bookcase",
		Material: catalogmodels.MaterialWood, Color: catalogmodels.ColorWhite,
		Dimensions: catalogmodels.Dimensions{Length: 80, Width: 30, Height: 200},
		Price:      price, Quantity: 6,
	}).Error)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Checked)
}

func TestAuditDetectsPriceMismatch(t *testing.T) {
	db := setupDB(t)
	svc := audit.NewService(db, zap.NewNop())

	customerID := "cust-1"
	tx := txmodels.Transaction{
		Type:       txmodels.TypeSale,
		CustomerID: &customerID,
		Lines: []txmodels.TransactionLine{
			{FurnitureID: "f-1", Quantity: 2, UnitPrice: decimal.RequireFromString("49.99")},
		},
		TotalPrice: decimal.RequireFromString("1.00"),
		Date:       time.Now().UTC(),
	}
	require.NoError(t, db.Create(&tx).Error)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "price_mismatch", report.Violations[0].Kind)
	assert.Equal(t, tx.ID, report.Violations[0].ID)
}

func TestAuditDetectsCounterpartyMismatch(t *testing.T) {
	db := setupDB(t)
	svc := audit.NewService(db, zap.NewNop())

	// A sale with no customer link at all.
	tx := txmodels.Transaction{
		Type: txmodels.TypeSale,
		Date: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&tx).Error)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "counterparty_mismatch", report.Violations[0].Kind)
}

func TestAuditDetectsNegativeStock(t *testing.T) {
	db := setupDB(t)
	svc := audit.NewService(db, zap.NewNop())

	// The ledger never writes this, simulate manual surgery.
	require.NoError(t, db.Create(&catalogmodels.Furniture{
		Name: "Billy", Description: "bookcase",
		Material: catalogmodels.MaterialWood, Color: catalogmodels.ColorWhite,
		Dimensions: catalogmodels.Dimensions{Length: 80, Width: 30, Height: 200},
		Price:      decimal.RequireFromString("49.99"),
	}).Error)
	require.NoError(t, db.Model(&catalogmodels.Furniture{}).
		Where("name = ?", "Billy").
		UpdateColumn("quantity", -2).Error)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "negative_stock", report.Violations[0].Kind)
}

func TestAuditSchemaCheck(t *testing.T) {
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	// No migration ran, the audit must refuse rather than scan garbage.
	svc := audit.NewService(db, zap.NewNop())
	_, err = svc.Run(context.Background())
	assert.Error(t, err)
}
