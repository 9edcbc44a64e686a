package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"myShopCart/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func seedProducts(t *testing.T, db *gorm.DB, names ...string) []domain.Product {
	t.Helper()

	repo := NewProductRepository(db)
	products := make([]domain.Product, 0, len(names))
	for i, name := range names {
		p := domain.Product{
			Name:  name,
			Price: decimal.NewFromInt(int64(i + 1)).Add(decimal.RequireFromString("0.99")),
		}
		require.NoError(t, repo.Create(context.Background(), &p))
		products = append(products, p)
	}

	return products
}
