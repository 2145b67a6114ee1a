package contracts

import "context"

// DatasetLoader fetches an ECDC category as a country indexed table
// ⭐ SSOT: 데이터 로더 인터페이스
type DatasetLoader interface {
	Load(ctx context.Context, category Category) (*Table, error)
}

// HistoryRepository persists classifications
type HistoryRepository interface {
	Save(ctx context.Context, items []Classification) error
	Latest(ctx context.Context, country string, limit int) ([]Classification, error)
}
