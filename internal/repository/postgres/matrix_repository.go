package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myShopCart/business/recommendation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatrixRow holds one encoded matrix per key. The column is plain json so the stored text is
// returned exactly as it was written.
type MatrixRow struct {
	MatrixKey string         `gorm:"column:matrix_key;primaryKey"`
	Data      datatypes.JSON `gorm:"column:data;type:json;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (MatrixRow) TableName() string {
	return "reco_matrices"
}

// MatrixRepository stores the co-occurrence matrix as a single row.
type MatrixRepository struct {
	DB  *gorm.DB
	key string
}

func NewMatrixRepository(db *gorm.DB, key string) *MatrixRepository {
	return &MatrixRepository{DB: db, key: key}
}

func (r *MatrixRepository) SaveMatrix(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := MatrixRow{
		MatrixKey: r.key,
		Data:      datatypes.JSON(data),
		UpdatedAt: time.Now().UTC(),
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "matrix_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert reco_matrices: %w", err)
	}

	return nil
}

func (r *MatrixRepository) LoadMatrix(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row MatrixRow
	err := r.DB.WithContext(ctx).First(&row, "matrix_key = ?", r.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, recommendation.ErrMatrixNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reco_matrices: %w", err)
	}

	return []byte(row.Data), nil
}
