package dispatch

import (
	"github.com/gin-gonic/gin"

	"github.com/sirwalterjones/sessionremind/internal/worker"
	"github.com/sirwalterjones/sessionremind/pkg/errors"
	"github.com/sirwalterjones/sessionremind/pkg/httputil"
)

type Handler struct {
	dispatcher *worker.Dispatcher
}

func NewHandler(dispatcher *worker.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// RunCycle fires one dispatch cycle now. The response is always a 200
// with the structured summary; "nothing to do", "quiet hours" and "lease
// held elsewhere" are all distinguished by the body, not the status.
func (h *Handler) RunCycle(c *gin.Context) {
	res, err := h.dispatcher.RunOnce(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, errors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, res)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/dispatch/run", h.RunCycle)
}
