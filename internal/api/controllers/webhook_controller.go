package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"daejeonmate/internal/infra"
	"daejeonmate/internal/models/request_models"
	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

// OperationHeaderName tags the push notification with create/update/delete.
const OperationHeaderName = "sanity-operation"

type WebhookController struct {
	syncService   services.SyncServiceInterface
	webhookSecret string
}

func NewWebhookController(syncService services.SyncServiceInterface, cfg *infra.Config) *WebhookController {
	return &WebhookController{
		syncService:   syncService,
		webhookSecret: cfg.SanityWebhookSecret,
	}
}

// WebhookHandler processes one signed push notification. The signature is
// verified over the raw body before anything else happens; a bad
// signature means no fetch and no store mutation. The payload carries
// identity only, so the full document is re-fetched by id.
func (w *WebhookController) WebhookHandler(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unable to read request body")
		return
	}

	signature := c.GetHeader(utils.SignatureHeaderName)
	if !utils.IsValidSignature(rawBody, w.webhookSecret, signature) {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var payload request_models.WebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if payload.Type != "place" {
		utils.RespondError(c, http.StatusBadRequest, "Unsupported document type: "+payload.Type)
		return
	}
	if payload.ID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Document id is required")
		return
	}

	operation := c.GetHeader(OperationHeaderName)
	switch operation {
	case "delete":
		if err := w.syncService.DeleteDocument(c.Request.Context(), payload.ID); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		utils.RespondSuccess(c, nil, "Deleted")
	case "create", "update":
		if err := w.syncService.SyncDocument(c.Request.Context(), payload.ID); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		utils.RespondSuccess(c, nil, "Synced")
	default:
		utils.RespondError(c, http.StatusBadRequest, "Unsupported operation: "+operation)
	}
}
