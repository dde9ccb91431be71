package usage

import (
	"github.com/gin-gonic/gin"

	"github.com/sirwalterjones/sessionremind/internal/middleware"
	"github.com/sirwalterjones/sessionremind/internal/service/usage"
	"github.com/sirwalterjones/sessionremind/pkg/errors"
	"github.com/sirwalterjones/sessionremind/pkg/httputil"
)

type Handler struct {
	service *usage.Service
}

func NewHandler(service *usage.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetUsage(c *gin.Context) {
	u, err := h.service.Current(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		httputil.RespondWithError(c, errors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, u)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/usage", h.GetUsage)
}
