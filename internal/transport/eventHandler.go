package transport

import (
	"errors"
	"net/http"

	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) GetAllEvents(c *gin.Context) {
	events, err := h.eventService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetLatestEvent(c *gin.Context) {
	event, err := h.eventService.GetLatest(c.Request.Context())
	if errors.Is(err, entity.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no events stored"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetByNotionID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, entity.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) GetParticipants(c *gin.Context) {
	participants, err := h.eventService.GetParticipants(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}
