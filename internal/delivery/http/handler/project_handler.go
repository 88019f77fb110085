package handler

import (
	"errors"

	"open-inn/internal/delivery/http/dto"
	"open-inn/internal/delivery/http/middleware"
	"open-inn/internal/pkg/response"
	"open-inn/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

type createProjectRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	TechStack      []string `json:"tech_stack"`
	BudgetMin      *float64 `json:"budget_min"`
	BudgetMax      *float64 `json:"budget_max"`
	Timeline       string   `json:"timeline"`
	ProjectType    string   `json:"project_type"`
}

type updateProjectStatusRequest struct {
	Status string `json:"status"`
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.ListOpen)
	r.Get("/:projectId", h.Get)
	r.Patch("/:projectId/status", h.UpdateStatus)
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	ownerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Create(c.Context(), usecase.CreateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		TechStack:      req.TechStack,
		BudgetMin:      req.BudgetMin,
		BudgetMax:      req.BudgetMax,
		Timeline:       req.Timeline,
		ProjectType:    req.ProjectType,
		OwnerID:        ownerID,
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewProjectResponse(p, nil))
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	pw, err := h.uc.Get(c.Context(), projectID)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponse(pw.Project, &pw.Owner))
}

func (h *ProjectHandler) ListOpen(c fiber.Ctx) error {
	projects, err := h.uc.ListOpen(c.Context())
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, pw := range projects {
		owner := pw.Owner
		out = append(out, dto.NewProjectResponse(pw.Project, &owner))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProjectHandler) UpdateStatus(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateProjectStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UpdateStatus(c.Context(), projectID, callerID, req.Status); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Project status updated", nil)
}

func mapProjectUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
