package message

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sirwalterjones/sessionremind/internal/middleware"
	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/service/message"
	"github.com/sirwalterjones/sessionremind/pkg/errors"
	"github.com/sirwalterjones/sessionremind/pkg/httputil"
)

type Handler struct {
	service *message.Service
}

func NewHandler(service *message.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateMessage(c *gin.Context) {
	var req model.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}
	// Messages always belong to the authenticated account; the owner id
	// in the body is ignored.
	req.OwnerID = middleware.OwnerID(c)

	msg, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, msg)
}

func (h *Handler) GetMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid message ID", err))
		return
	}

	msg, err := h.service.Get(c.Request.Context(), id, middleware.OwnerID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, msg)
}

func (h *Handler) ListMessages(c *gin.Context) {
	msgs, err := h.service.ListByOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, msgs)
}

// CancelMessage removes a scheduled message. Non-scheduled records are
// refused with the current state in the error; the success body echoes
// what was removed.
func (h *Handler) CancelMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid message ID", err))
		return
	}

	echo, err := h.service.Cancel(c.Request.Context(), id, middleware.OwnerID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, echo)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.POST("", h.CreateMessage)
		messages.GET("", h.ListMessages)
		messages.GET("/:id", h.GetMessage)
		messages.DELETE("/:id", h.CancelMessage)
	}
}
