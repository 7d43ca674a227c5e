package postgres

import (
	"github.com/sirawit/asset-borrowing/internal/asset"
	"gorm.io/gorm"
)

// AssetRepository implements the asset.Repository interface using GORM
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.Repository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) ListAssets() ([]*asset.Asset, error) {
	var assets []*asset.Asset
	err := r.db.Order("id").Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) CountByStatus() (*asset.DashboardCounts, error) {
	rows := []struct {
		Status string
		Total  int64
	}{}
	err := r.db.Model(&asset.Asset{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &asset.DashboardCounts{}
	for _, row := range rows {
		switch row.Status {
		case asset.StatusAvailable:
			counts.Available = row.Total
		case asset.StatusBorrowed:
			counts.Borrowed = row.Total
		case asset.StatusDisabled:
			counts.Disabled = row.Total
		}
	}
	return counts, nil
}
