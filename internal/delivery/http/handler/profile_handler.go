package handler

import (
	"errors"

	"open-inn/internal/delivery/http/dto"
	"open-inn/internal/delivery/http/middleware"
	"open-inn/internal/domain/user"
	"open-inn/internal/pkg/response"
	"open-inn/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type upsertProfileRequest struct {
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"years_experience"`
	HourlyRate      float64  `json:"hourly_rate"`
	PortfolioURL    string   `json:"portfolio_url"`
	GithubURL       string   `json:"github_url"`
	LinkedinURL     string   `json:"linkedin_url"`
	Availability    string   `json:"availability"`
	LookingFor      string   `json:"looking_for"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Get)
	r.Put("/me", h.Upsert)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req upsertProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	err := h.uc.Upsert(c.Context(), user.Profile{
		UserID:          userID,
		Skills:          req.Skills,
		YearsExperience: req.YearsExperience,
		HourlyRate:      req.HourlyRate,
		PortfolioURL:    req.PortfolioURL,
		GithubURL:       req.GithubURL,
		LinkedinURL:     req.LinkedinURL,
		Availability:    req.Availability,
		LookingFor:      req.LookingFor,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Profile saved", nil)
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
