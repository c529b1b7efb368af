package transport

import (
	"net/http"

	"github.com/mleonec/notibot/internal/service"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncService service.SyncService
}

func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// TriggerSync runs one reconciliation cycle outside the worker schedule.
// The service serializes cycles internally, so this is safe to call while
// the worker is running.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	report, err := h.syncService.Sync(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "report": report})
		return
	}

	c.JSON(http.StatusOK, report)
}
