package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/homewardhq/homeward/modules/contacts/domain/entities/tag"
	"github.com/homewardhq/homeward/pkg/composables"
	"github.com/homewardhq/homeward/pkg/eventbus"
)

type TagService struct {
	repo      tag.Repository
	publisher eventbus.EventBus
}

func NewTagService(repo tag.Repository, publisher eventbus.EventBus) *TagService {
	return &TagService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *TagService) GetAll(ctx context.Context) ([]tag.Tag, error) {
	return s.repo.GetAll(ctx)
}

func (s *TagService) GetByID(ctx context.Context, id uuid.UUID) (tag.Tag, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TagService) Create(ctx context.Context, dto *tag.CreateDTO) (tag.Tag, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return tag.Tag{}, err
	}

	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (tag.Tag, error) {
		return s.repo.Create(txCtx, dto.ToEntity(tenantID))
	})
}

func (s *TagService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, id); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, id)
	})
}
