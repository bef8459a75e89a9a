package holiday

import (
	"context"
	"time"
)

type Repository interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
}
