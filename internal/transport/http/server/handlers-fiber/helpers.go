package handlers_fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AleksGin/business-manager-ci/internal/entities"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/models"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := models.CodeInternal
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = models.CodeInvalidArgument
		msg = err.Error()
	case errors.Is(err, entities.ErrPermissionDenied):
		status = http.StatusForbidden
		code = models.CodePermissionDenied
		msg = err.Error()
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrTeamNotFound),
		errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrMeetingNotFound),
		errors.Is(err, entities.ErrEvaluationNotFound):
		status = http.StatusNotFound
		code = models.CodeNotFound
		msg = "resource not found"
	case errors.Is(err, entities.ErrInviteInvalid):
		status = http.StatusBadRequest
		code = models.CodeInviteInvalid
		msg = "invite code invalid or expired"
	case errors.Is(err, entities.ErrEmailExists):
		status = http.StatusConflict
		code = models.CodeEmailExists
		msg = "email already registered"
	case errors.Is(err, entities.ErrTeamExists):
		status = http.StatusConflict
		code = models.CodeTeamExists
		msg = "team name already exists"
	case errors.Is(err, entities.ErrEvaluationExists):
		status = http.StatusConflict
		code = models.CodeEvaluationExists
		msg = "task already evaluated"
	case errors.Is(err, entities.ErrInvalidOperation):
		status = http.StatusConflict
		code = models.CodeInvalidOperation
		msg = err.Error()
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code models.ErrorCode, msg string) models.ErrorResponse {
	return models.ErrorResponse{Error: models.ErrorBody{Code: code, Message: msg}}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse(models.CodeInvalidArgument, msg))
}

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.New("malformed " + name)
	}
	return id, nil
}

// parseOptionalID reads a uuid query param, nil when absent.
func parseOptionalID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.New("malformed " + name)
	}
	return &id, nil
}
