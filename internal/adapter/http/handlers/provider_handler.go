package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	response "insurance_quotes/internal/adapter/http/dto/response"
	"insurance_quotes/internal/usecase"
	"insurance_quotes/pkg"
)

// ProviderHandler exposes the read-only provider roster.
type ProviderHandler struct {
	usecase usecase.IAggregationUseCase
}

func NewProviderHandler(uc usecase.IAggregationUseCase) *ProviderHandler {
	return &ProviderHandler{usecase: uc}
}

// ListProviders godoc
// @Summary      Provider roster
// @Tags         providers
// @Produce      json
// @Param        category  query  string  false  "Only providers quoting this category"
// @Success      200  {array}   response.ProviderResponse
// @Failure      500  {object}  pkg.HTTPError
// @Router       /providers [get]
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	profiles, err := h.usecase.ListProviders(c.Request.Context(), c.Query("category"))
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProviderProfiles(profiles))
}
