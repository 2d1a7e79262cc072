package repository

import (
	"context"
	"fmt"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/pkg/database"

	"go.uber.org/zap"
)

type PromotionRepository interface {
	// FindActive returns promotions running on the given day.
	FindActive(ctx context.Context, onDay time.Time) ([]*entity.Promotion, error)
}

type promotionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPromotionRepository(db database.Querier, log *zap.Logger) PromotionRepository {
	return &promotionRepository{
		db:  db,
		log: log.With(zap.String("repository", "promotion")),
	}
}

func (r *promotionRepository) FindActive(ctx context.Context, onDay time.Time) ([]*entity.Promotion, error) {
	query := `
		SELECT id, title, description, discount_pct, start_date, end_date, promo_code, active
		FROM promotions
		WHERE active AND start_date <= $1 AND end_date >= $1
		ORDER BY end_date`

	rows, err := r.db.Query(ctx, query, onDay)
	if err != nil {
		r.log.Error("Failed to list promotions", zap.Error(err))
		return nil, fmt.Errorf("list active promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*entity.Promotion
	for rows.Next() {
		var p entity.Promotion
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.DiscountPct,
			&p.StartDate, &p.EndDate, &p.PromoCode, &p.Active)
		if err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		promotions = append(promotions, &p)
	}

	return promotions, rows.Err()
}
