package controllers

import (
	"github.com/gin-gonic/gin"

	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

type SyncController struct {
	syncService services.SyncServiceInterface
}

func NewSyncController(syncService services.SyncServiceInterface) *SyncController {
	return &SyncController{
		syncService: syncService,
	}
}

// TriggerSyncHandler runs a full reconciliation pass. The report carries
// per-document outcome counts; a partially failed pass is still a 200.
func (s *SyncController) TriggerSyncHandler(c *gin.Context) {
	report, err := s.syncService.SyncAll(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Sync completed")
}
