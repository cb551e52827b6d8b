// Package domain contains application Usecases orchestrating domain logic.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/invites"
	"github.com/AleksGin/business-manager-ci/internal/permissions"
	"github.com/AleksGin/business-manager-ci/internal/repository"
	"github.com/AleksGin/business-manager-ci/pkg/clock"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx       context.Context
	log       *zap.SugaredLogger
	repo      repository.Repository
	perms     *permissions.Validator
	invites   invites.Store
	clock     clock.Clock
	newID     func() uuid.UUID
	timeout   time.Duration
	inviteTTL time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	perms *permissions.Validator,
	inviteStore invites.Store,
	clk clock.Clock,
	timeout time.Duration,
	inviteTTL time.Duration,
) *Usecase {
	return &Usecase{
		ctx:       ctx,
		log:       log,
		repo:      repo,
		perms:     perms,
		invites:   inviteStore,
		clock:     clk,
		newID:     uuid.New,
		timeout:   timeout,
		inviteTTL: inviteTTL,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// actor loads the acting user for a permission check.
func (u *Usecase) actor(ctx context.Context, actorID uuid.UUID) (*entities.User, error) {
	return u.repo.GetUser(ctx, actorID)
}
