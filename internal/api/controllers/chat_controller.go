package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daejeonmate/internal/models/request_models"
	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

func (ct *ChatController) ChatHandler(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if len(req.Messages) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "At least one message is required")
		return
	}

	resp, err := ct.chatService.Chat(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Chat response generated")
}

func (ct *ChatController) PlannerChatHandler(c *gin.Context) {
	var req request_models.PlannerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		utils.RespondError(c, http.StatusBadRequest, "prompt is required")
		return
	}

	resp, err := ct.chatService.PlannerChat(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Travel plan created successfully")
}
