package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ebalakin/cartsync/internal/common"
	"github.com/ebalakin/cartsync/internal/server/models"
	"github.com/ebalakin/cartsync/internal/server/repositories/repomanager"
)

// ListService implements list creation and sharing.
type ListService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewListService(db *sql.DB, m repomanager.RepositoryManager) *ListService {
	return &ListService{db: db, repomanager: m}
}

// Create makes a new list owned by ownerID and returns its id.
func (s *ListService) Create(ctx context.Context, ownerID, name string) (string, error) {

	repo := s.repomanager.Lists(s.db)

	list, err := repo.Create(ctx, &models.List{Name: name, OwnerID: ownerID})
	if err != nil {
		return "", fmt.Errorf("error creating list: %w", err)
	}

	return list.ID, nil
}

// Share grants the account identified by email access to listID. The caller
// must already have access to the list themselves.
func (s *ListService) Share(ctx context.Context, byUserID, listID, email string) error {

	listRepo := s.repomanager.Lists(s.db)

	ok, err := listRepo.HasAccess(ctx, listID, byUserID)
	if err != nil {
		return common.ErrorInternal
	}
	if !ok {
		return common.ErrAccessDenied
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return listRepo.Grant(ctx, listID, user.ID)
}
