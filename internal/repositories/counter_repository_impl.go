package repositories

import (
	"context"

	"github.com/inanin-user/crm-system-sub001/internal/models"

	"gorm.io/gorm"
)

type counterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

// Next increments and returns the named counter in one upsert so the
// read-modify-write cannot lose updates under concurrency. A missing
// counter starts at 0, so the first call returns 1; past MaxSequence the
// value wraps back to 1.
func (r *counterRepository) Next(ctx context.Context, name string) (int, error) {
	var seq int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, seq) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE
		SET seq = CASE WHEN counters.seq + 1 > ? THEN 1 ELSE counters.seq + 1 END
		RETURNING seq`,
		name, models.MaxSequence,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// Current reads the counter without mutating it. A counter that does not
// exist reads as 0.
func (r *counterRepository) Current(ctx context.Context, name string) (int, error) {
	var counter models.Counter
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&counter).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return counter.Seq, nil
}
