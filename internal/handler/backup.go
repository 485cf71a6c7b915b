package handler

import (
	"fmt"
	"net/http"
	"time"

	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	svc      service.BackupService
	activity service.ActivityService
}

func NewBackupHandler(svc service.BackupService, activity service.ActivityService) *BackupHandler {
	return &BackupHandler{svc: svc, activity: activity}
}

// Export streams the full dataset as a downloadable JSON document.
func (h *BackupHandler) Export(c *gin.Context) {
	snapshot, err := h.svc.Export(c.Request.Context())
	audit(c, h.activity, "export", "backup", "", err)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("gamehouse-backup-%s.json", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, snapshot)
}
