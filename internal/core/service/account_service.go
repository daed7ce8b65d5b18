package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dpereira/storefront/internal/core/domain"
	"github.com/dpereira/storefront/internal/port"
)

type AccountService struct {
	repo port.AccountRepository
	log  *zap.Logger
}

func NewAccountService(repo port.AccountRepository, log *zap.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

func (s *AccountService) Create(ctx context.Context, name, email string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, domain.InvalidRequest("name and email are required")
	}

	account, err := s.repo.Create(ctx, name, email)
	if err != nil {
		return nil, err
	}
	s.log.Info("account created", zap.Int64("account_id", account.ID))
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListAll(ctx)
}
