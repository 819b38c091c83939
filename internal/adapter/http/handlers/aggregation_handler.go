package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	request "insurance_quotes/internal/adapter/http/dto/request"
	response "insurance_quotes/internal/adapter/http/dto/response"
	"insurance_quotes/internal/usecase"
	"insurance_quotes/pkg"
)

const AccessTokenHeader = "X-Access-Token"

var (
	errInvalidAggregationPayload = pkg.NewDomainErrorSimple("INVALID_AGGREGATION_INPUT", "Invalid aggregation payload", http.StatusBadRequest)
)

// AggregationHandler handles quote aggregation requests from the quote form
// and polling clients.
type AggregationHandler struct {
	usecase usecase.IAggregationUseCase
}

func NewAggregationHandler(uc usecase.IAggregationUseCase) *AggregationHandler {
	return &AggregationHandler{usecase: uc}
}

// Submit godoc
// @Summary      Submit a quote aggregation request
// @Description  Creates the request and starts querying every enabled provider for the category.
// @Tags         aggregations
// @Accept       json
// @Produce      json
// @Param        request  body      request.SubmitAggregationRequest  true  "Category and applicant payload"
// @Success      202      {object}  response.SubmitAggregationResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Router       /aggregations [post]
func (h *AggregationHandler) Submit(c *gin.Context) {
	var payload request.SubmitAggregationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAggregationPayload.HTTPStatus, errInvalidAggregationPayload.ToHTTPError())
		return
	}

	category := payload.ResolveCategory()
	if category == "" {
		c.JSON(errInvalidAggregationPayload.HTTPStatus, errInvalidAggregationPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Submit(c.Request.Context(), category, payload.Payload)
	if err != nil {
		appErr := mapAggregationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusAccepted, response.FromAggregationRequest(created))
}

// DispatchProvider godoc
// @Summary      Run one dispatched provider
// @Description  Runs the provider synchronously with retries and records its terminal attempt.
// @Tags         aggregations
// @Produce      json
// @Param        id    path    string  true  "Aggregation request ID"
// @Param        code  path    string  true  "Provider code"
// @Param        X-Access-Token  header  string  false  "Guest access token"
// @Success      200  {object}  response.DispatchResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /aggregations/{id}/providers/{code}/dispatch [post]
func (h *AggregationHandler) DispatchProvider(c *gin.Context) {
	result, err := h.usecase.DispatchProvider(c.Request.Context(), c.Param("id"), c.Param("code"), accessToken(c))
	if err != nil {
		appErr := mapAggregationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDispatchResult(result))
}

// GetProgress godoc
// @Summary      Aggregation progress
// @Tags         aggregations
// @Produce      json
// @Param        id  path  string  true  "Aggregation request ID"
// @Param        X-Access-Token  header  string  false  "Guest access token"
// @Param        access_token    query   string  false  "Guest access token"
// @Success      200  {object}  response.ProgressResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /aggregations/{id}/progress [get]
func (h *AggregationHandler) GetProgress(c *gin.Context) {
	progress, err := h.usecase.GetProgress(c.Request.Context(), c.Param("id"), accessToken(c))
	if err != nil {
		appErr := mapAggregationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProgress(progress))
}

// GetQuotes godoc
// @Summary      Ranked quotes
// @Description  Quotes received so far, best first. Empty when every provider failed.
// @Tags         aggregations
// @Produce      json
// @Param        id  path  string  true  "Aggregation request ID"
// @Param        X-Access-Token  header  string  false  "Guest access token"
// @Param        access_token    query   string  false  "Guest access token"
// @Success      200  {array}   response.ScoredQuoteResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /aggregations/{id}/quotes [get]
func (h *AggregationHandler) GetQuotes(c *gin.Context) {
	quotes, err := h.usecase.GetRankedQuotes(c.Request.Context(), c.Param("id"), accessToken(c))
	if err != nil {
		appErr := mapAggregationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromScoredQuotes(quotes))
}

func accessToken(c *gin.Context) string {
	return request.ResolveAccessToken(c.GetHeader(AccessTokenHeader), c.Query("access_token"))
}

func mapAggregationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCategory), errors.Is(err, usecase.ErrInvalidRequestID), errors.Is(err, usecase.ErrInvalidProviderCode):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidAccessToken):
		return pkg.NewDomainErrorSimple("INVALID_ACCESS_TOKEN", "Access token does not match this request", http.StatusForbidden)
	case errors.Is(err, usecase.ErrAggregationNotFound):
		return pkg.NewDomainErrorSimple("AGGREGATION_NOT_FOUND", "Aggregation request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoProvidersEnabled):
		return pkg.NewDomainErrorSimple("NO_PROVIDERS_ENABLED", "No providers are enabled for this category", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrAlreadyDispatched):
		return pkg.NewDomainErrorSimple("PROVIDER_ALREADY_DISPATCHED", "Provider already ran for this request", http.StatusConflict)
	case errors.Is(err, usecase.ErrProviderNotDispatched):
		return pkg.NewDomainErrorSimple("PROVIDER_NOT_DISPATCHED", "Provider is not part of this request", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRequestNotPending):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_PENDING", "Aggregation request is not pending", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
