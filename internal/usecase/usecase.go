package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AleksGin/business-manager-ci/internal/invites"
	"github.com/AleksGin/business-manager-ci/internal/permissions"
	"github.com/AleksGin/business-manager-ci/internal/repository"
	"github.com/AleksGin/business-manager-ci/internal/usecase/domain"
	"github.com/AleksGin/business-manager-ci/pkg/clock"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	UserUsecaseInterface
	TeamUsecaseInterface
	MembershipUsecaseInterface
	TaskUsecaseInterface
	MeetingUsecaseInterface
	EvaluationUsecaseInterface
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
) InterfaceUsecase {
	return domain.New(log, ctx, repo, perms, inviteStore, clk, timeout, inviteTTL)
}
