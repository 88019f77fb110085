package handler

import (
	"errors"
	"strconv"

	"open-inn/internal/delivery/http/dto"
	"open-inn/internal/delivery/http/middleware"
	"open-inn/internal/pkg/response"
	"open-inn/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchmakingHandler struct {
	uc usecase.MatchmakingUsecase
}

type generateForProjectRequest struct {
	ProjectID uuid.UUID `json:"project_id"`
}

func NewMatchmakingHandler(uc usecase.MatchmakingUsecase) *MatchmakingHandler {
	return &MatchmakingHandler{uc: uc}
}

func (h *MatchmakingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/generate", h.GenerateForProject)
	r.Post("/generate-user", h.GenerateForUser)
	r.Get("/project/:projectId", h.GetForProject)
	r.Get("/user/:userId", h.GetForUser)
	r.Get("/stats/:projectId", h.StatsForProject)
}

func (h *MatchmakingHandler) GenerateForProject(c fiber.Ctx) error {
	var req generateForProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.ProjectID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "project_id is required", nil, nil)
	}

	res, err := h.uc.GenerateForProject(c.Context(), req.ProjectID)
	if err != nil {
		return mapMatchmakingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, res.Message, dto.NewGenerationResponse(res))
}

// GenerateForUser matches the authenticated caller against all open projects.
func (h *MatchmakingHandler) GenerateForUser(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.uc.GenerateForUser(c.Context(), userID)
	if err != nil {
		return mapMatchmakingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, res.Message, dto.NewGenerationResponse(res))
}

func (h *MatchmakingHandler) GetForProject(c fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.GetForProject(c.Context(), projectID, limitFromQuery(c))
	if err != nil {
		return mapMatchmakingUsecaseError(err)
	}

	out := make([]dto.ProjectMatchResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewProjectMatchResponse(item))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchmakingHandler) GetForUser(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.GetForUser(c.Context(), userID, limitFromQuery(c))
	if err != nil {
		return mapMatchmakingUsecaseError(err)
	}

	out := make([]dto.UserMatchResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewUserMatchResponse(item))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchmakingHandler) StatsForProject(c fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	stats, err := h.uc.StatsForProject(c.Context(), projectID)
	if err != nil {
		return mapMatchmakingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchStatsResponse(stats))
}

func limitFromQuery(c fiber.Ctx) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func mapMatchmakingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Freelancer profile not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
