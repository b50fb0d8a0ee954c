package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// recommendRequest is the wire form of a recommendation request.
type recommendRequest struct {
	Sliders          domain.Sliders     `json:"sliders"`
	SelectedFeatures []domain.FeatureID `json:"selectedFeatures"`
	FreeText         string             `json:"freeText"`
}

// answerRequest is the wire form of a follow-up answer.
type answerRequest struct {
	OptionID string `json:"optionId"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleRecommend(c echo.Context) error {
	var req recommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}

	profile := domain.UserProfile{
		Sliders:          req.Sliders,
		SelectedFeatures: req.SelectedFeatures,
		FreeText:         req.FreeText,
	}

	result, err := s.engine.Recommend(c.Request().Context(), &profile)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleAnswer(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}

	result, err := s.engine.AnswerFollowUp(c.Request().Context(), c.Param("requestId"), req.OptionID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleCandidates(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Candidates())
}

func (s *Server) handleFeatures(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.FeatureCatalog())
}

func (s *Server) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.EngineStats())
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps engine errors to HTTP: caller mistakes are 4xx, anything
// else is a 500 that the tier chain should have made impossible.
func (s *Server) writeError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrUnknownRequest) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown or expired request id"})
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Message, Field: ve.Field})
	}

	s.logger.Error("request failed", "error", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
