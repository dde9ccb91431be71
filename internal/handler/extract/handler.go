package extract

import (
	"github.com/gin-gonic/gin"

	"github.com/sirwalterjones/sessionremind/internal/extract"
	"github.com/sirwalterjones/sessionremind/pkg/errors"
	"github.com/sirwalterjones/sessionremind/pkg/httputil"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type extractRequest struct {
	RawText string `json:"raw_text" binding:"required"`
}

// ExtractContact runs the booking-page heuristics over pasted text. The
// result is partial by design; the client pre-fills a form with it and
// the user fixes what the heuristics missed.
func (h *Handler) ExtractContact(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	httputil.RespondWithSuccess(c, extract.Extract(req.RawText))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/extract", h.ExtractContact)
}
