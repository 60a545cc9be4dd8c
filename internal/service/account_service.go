package service

import (
	"context"
	"errors"
	"log/slog"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/memory"
	"socialnet/backend/internal/repository"
)

// AccountService handles whole-account deletion: all database rows in one
// transaction, plus the account's vector memories best effort.
type AccountService struct {
	accounts repository.AccountRepository
	chats    repository.ChatRepository
	mem      memory.Store
	logger   *slog.Logger
}

func NewAccountService(accounts repository.AccountRepository, chats repository.ChatRepository, mem memory.Store) *AccountService {
	return &AccountService{
		accounts: accounts,
		chats:    chats,
		mem:      mem,
		logger:   slog.Default().With("component", "account"),
	}
}

// DeleteAccount removes everything the user owns. Vector memories are
// cleared first; a memory-store failure is logged but does not keep the
// account alive.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	if s.mem != nil {
		ids, err := s.chats.MemoryIDs(userID, "")
		if err != nil {
			s.logger.Warn("failed to collect memory handles", "user_id", userID, "error", err)
		} else if len(ids) > 0 {
			if err := s.mem.Forget(ctx, ids); err != nil {
				s.logger.Warn("failed to delete memories", "user_id", userID, "error", err)
			}
		}
	}

	if err := s.accounts.DeleteUserData(userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("user not found")
		}
		return err
	}
	return nil
}
