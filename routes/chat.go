package routes

import (
	"barquea-server/models"
	"barquea-server/storage"
	"barquea-server/utils"
	"fmt"
	"net/http"
	"time"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// ListChats returns the caller's chats; with ?admin=true (operators only)
// it lists every direct chat, excluding system broadcast chats.
func ListChats(ctx iris.Context) {
	tok := jsonWT.Get(ctx)
	if tok == nil {
		ctx.StopWithStatus(http.StatusUnauthorized)
		return
	}
	user := tok.(*utils.AccessToken)

	adminView, _ := ctx.URLParamBool("admin")

	query := storage.DB.Model(&models.Chat{}).Preload("User")
	if adminView {
		if user.Role != "admin" && user.Role != "super_admin" {
			ctx.StopWithStatus(http.StatusForbidden)
			return
		}
		query = query.Where("kind <> ?", "system")
	} else {
		query = query.Where("user_id = ?", user.ID)
	}

	var chats []models.Chat
	if err := query.Order("last_message_at DESC NULLS LAST").Find(&chats).Error; err != nil {
		ctx.StopWithStatus(http.StatusInternalServerError)
		return
	}

	ctx.JSON(iris.Map{"success": true, "chats": chats})
}

// ListChatMessages returns a chat's messages in chronological order
// (last 100). Clients poll this and compute unread counts locally.
func ListChatMessages(ctx iris.Context) {
	tok := jsonWT.Get(ctx)
	if tok == nil {
		ctx.StopWithStatus(http.StatusUnauthorized)
		return
	}
	user := tok.(*utils.AccessToken)

	chatID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	chat, ok := loadChatForUser(ctx, chatID, user)
	if !ok {
		return
	}

	var msgs []models.Message
	if err := storage.DB.Where("chat_id = ?", chat.ID).
		Preload("Sender").
		Order("id DESC").Limit(100).Find(&msgs).Error; err != nil {
		ctx.StopWithStatus(http.StatusInternalServerError)
		return
	}
	// reverse to chronological
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	ctx.JSON(iris.Map{"success": true, "messages": msgs})
}

// MarkChatRead stamps the caller into the read-by list of every message in
// the chat it has not seen yet.
func MarkChatRead(ctx iris.Context) {
	tok := jsonWT.Get(ctx)
	if tok == nil {
		ctx.StopWithStatus(http.StatusUnauthorized)
		return
	}
	user := tok.(*utils.AccessToken)

	chatID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	chat, ok := loadChatForUser(ctx, chatID, user)
	if !ok {
		return
	}

	var msgs []models.Message
	if err := storage.DB.Where("chat_id = ?", chat.ID).Find(&msgs).Error; err != nil {
		ctx.StopWithStatus(http.StatusInternalServerError)
		return
	}

	marked := 0
	for i := range msgs {
		if msgs[i].SenderID == user.ID {
			continue
		}
		if msgs[i].MarkReadBy(user.ID) {
			if err := storage.DB.Model(&msgs[i]).Update("read_by", msgs[i].ReadBy).Error; err == nil {
				marked++
			}
		}
	}

	ctx.JSON(iris.Map{"success": true, "marked": marked})
}

// loadChatForUser enforces that the caller participates in the chat or is an
// operator.
func loadChatForUser(ctx iris.Context, chatID uint, user *utils.AccessToken) (*models.Chat, bool) {
	var chat models.Chat
	if err := storage.DB.First(&chat, chatID).Error; err != nil {
		ctx.StopWithStatus(http.StatusNotFound)
		return nil, false
	}
	isOperator := user.Role == "admin" || user.Role == "super_admin"
	if chat.UserID != user.ID && !isOperator {
		ctx.StopWithStatus(http.StatusForbidden)
		return nil, false
	}
	return &chat, true
}

type sendChatMessageInput struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// SendChatMessage lets a chat participant append a message.
func SendChatMessage(ctx iris.Context) {
	tok := jsonWT.Get(ctx)
	if tok == nil {
		ctx.StopWithStatus(http.StatusUnauthorized)
		return
	}
	user := tok.(*utils.AccessToken)

	chatID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	chat, ok := loadChatForUser(ctx, chatID, user)
	if !ok {
		return
	}

	var input sendChatMessageInput
	if err := ctx.ReadJSON(&input); err != nil || input.Text == "" {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	role := user.Role
	if role == "super_admin" {
		role = "admin"
	}
	msg := models.Message{
		ChatID:     chat.ID,
		SenderID:   user.ID,
		SenderRole: role,
		Text:       input.Text,
	}
	if err := storage.DB.Create(&msg).Error; err != nil {
		ctx.StopWithStatus(http.StatusInternalServerError)
		return
	}
	now := time.Now()
	storage.DB.Model(chat).Update("last_message_at", now)

	storage.DB.Preload("Sender").First(&msg, msg.ID)
	ctx.JSON(iris.Map{"success": true, "message": msg})
}

// Typing indicator: set a short-lived key in Redis for 5 seconds
func Typing(ctx iris.Context) {
	tok := jsonWT.Get(ctx)
	if tok == nil {
		ctx.StopWithStatus(http.StatusUnauthorized)
		return
	}
	user := tok.(*utils.AccessToken)

	chatID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	if _, ok := loadChatForUser(ctx, chatID, user); !ok {
		return
	}

	key := typingKey(chatID, user.ID)
	storage.Redis.Set(ctx, key, "1", 5*time.Second)
	ctx.JSON(iris.Map{"success": true})
}

// ListTyping reports which other participants currently hold a typing key.
func ListTyping(ctx iris.Context) {
	tok := jsonWT.Get(ctx)
	if tok == nil {
		ctx.StopWithStatus(http.StatusUnauthorized)
		return
	}
	user := tok.(*utils.AccessToken)

	chatID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	chat, ok := loadChatForUser(ctx, chatID, user)
	if !ok {
		return
	}

	typing := []iris.Map{}
	if chat.UserID != user.ID {
		key := typingKey(chatID, chat.UserID)
		if val, err := storage.Redis.Get(ctx, key).Result(); err == nil && val == "1" {
			var other models.User
			if err := storage.DB.First(&other, chat.UserID).Error; err == nil {
				typing = append(typing, iris.Map{
					"userID": other.ID,
					"name":   other.FirstName + " " + other.LastName,
				})
			}
		}
	}
	ctx.JSON(iris.Map{"success": true, "typing": typing})
}

func typingKey(chatID uint, userID uint) string {
	return fmt.Sprintf("typing:chat:%d:user:%d", chatID, userID)
}
