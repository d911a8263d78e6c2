package routes

import (
	"barquea-server/models"
	"barquea-server/services"
	"barquea-server/storage"
	"barquea-server/utils"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

type adminSendMessageInput struct {
	UserID     uint   `json:"userId" validate:"required"`
	Text       string `json:"text" validate:"required,max=5000"`
	SenderRole string `json:"senderRole" validate:"omitempty,oneof=admin system"`
}

// AdminSendMessage - POST /admin/messages/send {userId, text, senderRole?}
func AdminSendMessage(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var body adminSendMessageInput
	if err := ctx.ReadJSON(&body); err != nil || body.UserID == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "userId and text are required")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "text must not be empty")
		return
	}

	svc := services.NewMessageService(storage.DB)
	msg, err := svc.SendDirect(claims.ID, body.UserID, body.Text, body.SenderRole)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
			return
		}
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to send message")
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": msg})
}

type broadcastInput struct {
	Audience string `json:"audience" validate:"required,oneof=all hosts guests"`
	Text     string `json:"text" validate:"required,max=5000"`
}

// AdminBroadcast - POST /admin/messages/broadcast {audience, text} → {sentTo}
func AdminBroadcast(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var body broadcastInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "audience and text are required")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "text must not be empty")
		return
	}

	svc := services.NewMessageService(storage.DB)
	sent, err := svc.Broadcast(claims.ID, body.Audience, body.Text)
	if err != nil {
		if errors.Is(err, services.ErrUnknownAudience) {
			utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "audience must be all, hosts or guests")
			return
		}
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "broadcast failed")
		return
	}

	utils.Audit(ctx, "messages.broadcast", "broadcast", 0, nil, iris.Map{"audience": body.Audience, "sentTo": sent})
	ctx.JSON(iris.Map{"success": true, "sentTo": sent})
}

// AdminListBroadcasts - GET /admin/messages/broadcast/list?page=&limit=
func AdminListBroadcasts(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 25)
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	if page < 1 {
		page = 1
	}

	query := storage.DB.Model(&models.Broadcast{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to count broadcasts")
		return
	}

	var broadcasts []models.Broadcast
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&broadcasts).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to load broadcasts")
		return
	}

	utils.JSONPage(ctx, broadcasts, page, limit, total)
}

// AdminCleanupBroadcasts - DELETE /admin/messages/broadcast/cleanup?days=
// Removes broadcast records and their system messages older than the cutoff
// (default 30 days).
func AdminCleanupBroadcasts(ctx iris.Context) {
	days := ctx.URLParamIntDefault("days", 30)
	if days < 1 {
		days = 1
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	svc := services.NewMessageService(storage.DB)
	removed, err := svc.CleanupBroadcasts(cutoff)
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "cleanup failed")
		return
	}

	utils.Audit(ctx, "messages.broadcast_cleanup", "broadcast", 0, nil, iris.Map{"removed": removed, "days": days})
	ctx.JSON(iris.Map{"success": true, "removed": removed})
}
