package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGetTableColumnsMySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("id", "VARCHAR(36)", "NO", "PRI", nil, "")
	rows.AddRow("Quantity", "INT", "NO", "", "0", "")

	mock.ExpectQuery("SHOW COLUMNS FROM `furniture`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "furniture")
	assert.NoError(t, err)
	assert.Len(t, columns, 2)
	// Names and types come back lowercased regardless of the server's casing.
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "varchar(36)", columns[0].Type)
	assert.Equal(t, "quantity", columns[1].Field)
}

func TestHasColumnsReportsMissing(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("id", "varchar(36)", "NO", "PRI", nil, "")
	rows.AddRow("type", "varchar(10)", "NO", "", nil, "")

	mock.ExpectQuery("SHOW COLUMNS FROM `transactions`").WillReturnRows(rows)

	missing, err := HasColumns(db, "transactions", []string{"id", "type", "total_price"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"total_price"}, missing)
}
