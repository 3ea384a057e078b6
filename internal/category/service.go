package category

import (
	"context"
	"strings"

	"localwear-be/internal/apperror"
)

const maxFilterLength = 100

type Service interface {
	List(ctx context.Context, filter string) ([]*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter string) ([]*Category, error) {
	filter = strings.TrimSpace(filter)
	if len(filter) > maxFilterLength {
		return nil, apperror.BadRequest("search must be at most %d characters", maxFilterLength)
	}
	return s.repo.List(ctx, filter)
}
