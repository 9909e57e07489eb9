package reporting

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// StockMovement mirrors one row of the legacy stock-tracking tables. The
// stock database is a read replica this service never writes to.
type StockMovement struct {
	ID            uint       `json:"id"`
	Matricule     string     `json:"matricule"`
	Direction     string     `json:"direction"` // "reception" or "depart"
	Product       string     `json:"product"`
	Quantity      float64    `json:"quantity"`
	RecordedAt    *time.Time `json:"recorded_at,omitempty"`
	Establishment string     `json:"establishment"`
}

type StockFilter struct {
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// StockService runs raw tabular queries against the external stock
// database; the schema is owned elsewhere so no models are migrated.
type StockService struct {
	stockDB *gorm.DB
}

func NewStockService(stockDB *gorm.DB) *StockService {
	return &StockService{stockDB: stockDB}
}

// Enabled reports whether a stock database was configured.
func (s *StockService) Enabled() bool {
	return s.stockDB != nil
}

func (s *StockService) Movements(ctx context.Context, filter StockFilter) ([]StockMovement, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	query := `
		SELECT id, matricule, 'reception' AS direction, product, quantity, recorded_at, establishment
		FROM reception_camions
		WHERE (? = '' OR matricule LIKE ? OR product LIKE ?)
		UNION ALL
		SELECT id, matricule, 'depart' AS direction, product, quantity, recorded_at, establishment
		FROM depart_camions
		WHERE (? = '' OR matricule LIKE ? OR product LIKE ?)
		ORDER BY recorded_at DESC
		LIMIT ?`

	like := "%" + filter.Search + "%"
	var movements []StockMovement
	err := s.stockDB.WithContext(ctx).
		Raw(query, filter.Search, like, like, filter.Search, like, like, limit).
		Scan(&movements).Error
	if err != nil {
		return nil, err
	}

	// Date bounds applied in memory: the legacy tables disagree on the
	// recorded_at column type across establishments.
	if filter.From == nil && filter.To == nil {
		return movements, nil
	}
	filtered := movements[:0]
	for _, m := range movements {
		if m.RecordedAt == nil {
			continue
		}
		if filter.From != nil && m.RecordedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.RecordedAt.After(*filter.To) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered, nil
}
