package asset

// Asset status values. These are wire-level strings persisted as-is; the
// "Disable" spelling is part of the stored data contract.
const (
	StatusAvailable = "Available"
	StatusPending   = "Pending"
	StatusBorrowed  = "Borrowed"
	StatusDisabled  = "Disable"
)

type Asset struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	AssetName string `json:"asset_name" gorm:"column:asset_name;not null"`
	Status    string `json:"status" gorm:"default:Available"`
}

func (Asset) TableName() string {
	return "assets"
}

// DashboardCounts is the per-status asset tally shown on the dashboard.
type DashboardCounts struct {
	Available int64 `json:"Available"`
	Borrowed  int64 `json:"Borrowed"`
	Disabled  int64 `json:"Disabled"`
}

type Repository interface {
	ListAssets() ([]*Asset, error)
	CountByStatus() (*DashboardCounts, error)
}
