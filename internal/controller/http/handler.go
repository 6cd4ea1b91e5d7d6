package http

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/pkg/response"
	"github.com/Freeeeeet/skischool_office/internal/scheduler"
	"github.com/Freeeeeet/skischool_office/internal/service"
	"github.com/gin-gonic/gin"
)

// SchedulerService операции над сетками и сессиями выбора
type SchedulerService interface {
	DaySnapshot(ctx context.Context, date string) (*service.DaySnapshot, error)
	CheckSlot(ctx context.Context, sessionID string, req service.SlotRequest) (scheduler.Result, error)
	StageSlot(ctx context.Context, sessionID string, req service.SlotRequest) (service.StageResult, error)
	ResizeSlot(ctx context.Context, sessionID, slotID, newEndTime string) (service.StageResult, error)
	RemoveSlot(ctx context.Context, sessionID, slotID string) error
	ClearSession(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (service.SessionView, error)
	SlotAt(ctx context.Context, sessionID, instructorID, date, at string) (model.SlotSelection, bool, error)
	SetResizing(ctx context.Context, sessionID string, isResizing bool, slotID string) (service.SessionView, error)
}

// BookingService создание заказа из сессии
type BookingService interface {
	CreateFromSession(ctx context.Context, sessionID string, customer service.Customer) (*model.Ticket, error)
}

type Handler struct {
	scheduler SchedulerService
	booking   BookingService
}

func NewHandler(scheduler SchedulerService, booking BookingService) *Handler {
	return &Handler{
		scheduler: scheduler,
		booking:   booking,
	}
}

func (h *Handler) Day(c *gin.Context) {
	var q DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query", err)
		return
	}

	snap, err := h.scheduler.DaySnapshot(c.Request.Context(), q.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDayResponse(snap))
}

func (h *Handler) GetSession(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid session id", err)
		return
	}

	view, err := h.scheduler.Session(c.Request.Context(), uri.SessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(view))
}

func (h *Handler) Check(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid session id", err)
		return
	}

	var body SlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.scheduler.CheckSlot(c.Request.Context(), uri.SessionID, body.toRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{Valid: res.Valid, Reason: res.Reason})
}

func (h *Handler) AddSlot(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid session id", err)
		return
	}

	var body SlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.scheduler.StageSlot(c.Request.Context(), uri.SessionID, body.toRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	if !res.Result.Valid {
		c.JSON(http.StatusUnprocessableEntity, NewValidationResponse(res))
		return
	}

	c.JSON(http.StatusCreated, NewValidationResponse(res))
}

func (h *Handler) ResizeSlot(c *gin.Context) {
	var uri slotURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid slot path", err)
		return
	}

	var body ResizeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.scheduler.ResizeSlot(c.Request.Context(), uri.SessionID, uri.SlotID, body.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !res.Result.Valid {
		c.JSON(http.StatusUnprocessableEntity, NewValidationResponse(res))
		return
	}

	c.JSON(http.StatusOK, NewValidationResponse(res))
}

func (h *Handler) RemoveSlot(c *gin.Context) {
	var uri slotURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid slot path", err)
		return
	}

	if err := h.scheduler.RemoveSlot(c.Request.Context(), uri.SessionID, uri.SlotID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearSession(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid session id", err)
		return
	}

	if err := h.scheduler.ClearSession(c.Request.Context(), uri.SessionID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) SlotAt(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid session id", err)
		return
	}

	var q SlotAtQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query", err)
		return
	}

	slot, found, err := h.scheduler.SlotAt(c.Request.Context(), uri.SessionID, q.InstructorID, q.Date, q.Time)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.Error(c, service.ErrSlotNotFound)
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *Handler) SetResizing(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid session id", err)
		return
	}

	var body ResizingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	view, err := h.scheduler.SetResizing(c.Request.Context(), uri.SessionID, body.IsResizing, body.SlotID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(view))
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid session id", err)
		return
	}

	var body BookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	ticket, err := h.booking.CreateFromSession(c.Request.Context(), uri.SessionID, service.Customer{
		Name:  body.CustomerName,
		Phone: body.CustomerPhone,
		Notes: body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
