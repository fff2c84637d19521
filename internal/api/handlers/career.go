package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"career-relay/internal/api/middleware"
	"career-relay/internal/api/validation"
	"career-relay/internal/logging"
	"career-relay/pkg/models"
	"career-relay/pkg/utils"
)

// CareerService is the dispatcher behind the career endpoints
type CareerService interface {
	Recommend(ctx context.Context, payload map[string]any) ([]any, error)
	Chat(ctx context.Context, message any) (string, error)
	MarketTrends(ctx context.Context, sector any) ([]any, error)
}

// Generic details returned for internal faults. Nothing about the cause is exposed.
const (
	recommendationFailureDetail = "An unexpected error occurred while generating recommendations."
	chatFailureDetail           = "An unexpected error occurred during chat."
	marketTrendsFailureDetail   = "An unexpected error occurred while fetching market trends."
)

// RecommendationsHandler handles job recommendation requests
func RecommendationsHandler(service CareerService) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := middleware.GetRequestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.RecommendationRequest
		if err := bindAndValidate(c, &req); err != nil {
			logger.WithError(err).Warn("Recommendation request rejected")
			return validationFailure(c, requestID, err)
		}

		payload := req.Payload()
		logger.Info("Received recommendation request", map[string]interface{}{
			"has_detailed_expectations": req.DetailedExpectations != nil,
		})

		records, err := service.Recommend(c.Request().Context(), payload)
		if err != nil {
			return failure(c, logger, requestID, err, recommendationFailureDetail)
		}

		logger.Info("Recommendation request completed", map[string]interface{}{
			"recommendations": len(records),
			"processing_time": utils.FormatDuration(time.Since(startTime)),
		})
		return c.JSON(http.StatusOK, models.RecommendationsResponse{Recommendations: records})
	}
}

// ChatHandler relays a chat message to the model
func ChatHandler(service CareerService) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.GetRequestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.ChatRequest
		if err := bindAndValidate(c, &req); err != nil {
			logger.WithError(err).Warn("Chat request rejected")
			return validationFailure(c, requestID, err)
		}

		reply, err := service.Chat(c.Request().Context(), req.Message)
		if err != nil {
			return failure(c, logger, requestID, err, chatFailureDetail)
		}

		return c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
	}
}

// MarketTrendsHandler returns career tips, optionally for the sector query parameter
func MarketTrendsHandler(service CareerService) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.GetRequestID(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.MarketTrendsRequest
		if values, ok := c.QueryParams()["sector"]; ok && len(values) > 0 {
			sector := values[0]
			req.Sector = &sector
		}
		if err := c.Validate(&req); err != nil {
			logger.WithError(err).Warn("Market trends request rejected")
			return validationFailure(c, requestID, err)
		}

		var sector any
		if req.Sector != nil {
			sector = *req.Sector
		}

		records, err := service.MarketTrends(c.Request().Context(), sector)
		if err != nil {
			return failure(c, logger, requestID, err, marketTrendsFailureDetail)
		}

		return c.JSON(http.StatusOK, models.MarketTrendsResponse{MarketTrends: records})
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return utils.NewValidationError("Invalid request body", err)
	}
	return c.Validate(req)
}

func validationFailure(c echo.Context, requestID string, err error) error {
	detail := validation.Describe(err)
	if ce, ok := utils.AsCustomError(err); ok {
		detail = ce.Detail
	}
	return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
		Error:     "validation_failed",
		Detail:    detail,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

// failure maps a dispatcher error to a response. Client errors keep their code and
// detail; everything else becomes a 500 with the route's generic detail.
func failure(c echo.Context, logger logging.Logger, requestID string, err error, genericDetail string) error {
	if ce, ok := utils.AsCustomError(err); ok && ce.Code < http.StatusInternalServerError {
		logger.WithError(err).Warn("Request failed validation in dispatcher")
		return c.JSON(ce.Code, models.ErrorResponse{
			Error:     "validation_failed",
			Detail:    ce.Detail,
			RequestID: requestID,
			Timestamp: time.Now(),
		})
	}

	logger.WithError(err).Error(genericDetail, map[string]interface{}{
		"path":  c.Path(),
		"cause": fmt.Sprintf("%+v", err),
	})
	internal := utils.NewInternalServerError(genericDetail)
	return c.JSON(internal.Code, models.ErrorResponse{
		Error:     "internal_error",
		Detail:    internal.Message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
