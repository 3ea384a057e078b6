package category

import (
	"context"
	"strings"

	"localwear-be/internal/db"
	"localwear-be/internal/logger"

	"go.uber.org/zap"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches filter literally anywhere in the value.
func containsPattern(filter string) string {
	return "%" + likeEscaper.Replace(filter) + "%"
}

type Repository interface {
	List(ctx context.Context, filter string) ([]*Category, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

func (r *repository) List(ctx context.Context, filter string) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCategories"),
		zap.String("filter", filter),
	)

	query := `
		SELECT category, COUNT(*)
		FROM products
	`
	var args []any
	if filter != "" {
		query += ` WHERE category ILIKE $1 ESCAPE '\'`
		args = append(args, containsPattern(filter))
	}
	query += ` GROUP BY category ORDER BY category ASC`

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Name, &c.ProductCount); err != nil {
			log.Error("failed to scan category row", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Debug("categories loaded", zap.Int("count", len(categories)))
	return categories, nil
}
