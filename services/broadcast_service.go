package services

import (
	"barquea-server/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrUnknownAudience = errors.New("unknown broadcast audience")

// RolesForAudience maps an audience segment to the user roles it selects.
// Admin accounts are never broadcast targets.
func RolesForAudience(audience string) ([]string, error) {
	switch audience {
	case "all":
		return []string{"user", "host"}, nil
	case "hosts":
		return []string{"host"}, nil
	case "guests":
		return []string{"user"}, nil
	default:
		return nil, ErrUnknownAudience
	}
}

// MessageService handles operator messaging: direct sends and broadcast
// fan-out over an audience segment.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// findOrCreateChat returns the user's chat of the given kind, creating it on
// first contact.
func (s *MessageService) findOrCreateChat(userID uint, kind string) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.Where("user_id = ? AND kind = ?", userID, kind).First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	chat = models.Chat{UserID: userID, Kind: kind}
	if err := s.db.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *MessageService) appendMessage(chat *models.Chat, senderID uint, senderRole, text string) (*models.Message, error) {
	msg := models.Message{
		ChatID:     chat.ID,
		SenderID:   senderID,
		SenderRole: senderRole,
		Text:       text,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	s.db.Model(chat).Update("last_message_at", now)
	return &msg, nil
}

// SendDirect appends an operator message to the (admin, user) direct chat,
// creating the chat if absent. The target user must exist.
func (s *MessageService) SendDirect(adminID, userID uint, text, senderRole string) (*models.Message, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if senderRole == "" {
		senderRole = "admin"
	}
	chat, err := s.findOrCreateChat(userID, "direct")
	if err != nil {
		return nil, err
	}
	return s.appendMessage(chat, adminID, senderRole, text)
}

// Broadcast fans one message out to every user the audience selects, one
// system chat per recipient. Recipients that fail mid-fanout are skipped;
// there is no rollback or resume. Returns the delivered count.
func (s *MessageService) Broadcast(adminID uint, audience, text string) (int, error) {
	roles, err := RolesForAudience(audience)
	if err != nil {
		return 0, err
	}

	var users []models.User
	if err := s.db.Where("role IN ?", roles).Find(&users).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, user := range users {
		chat, err := s.findOrCreateChat(user.ID, "system")
		if err != nil {
			continue
		}
		if _, err := s.appendMessage(chat, adminID, "system", text); err != nil {
			continue
		}
		sent++
	}

	record := models.Broadcast{AdminID: adminID, Audience: audience, Text: text, SentTo: sent}
	if err := s.db.Create(&record).Error; err != nil {
		return sent, err
	}
	return sent, nil
}

// staleBroadcastMessages selects the fan-out messages a cleanup may remove:
// system-role messages inside system chats, older than the cutoff. Direct
// operator messages live in "direct" chats and stay untouched.
func (s *MessageService) staleBroadcastMessages(olderThan time.Time) *gorm.DB {
	systemChats := s.db.Model(&models.Chat{}).Select("id").Where("kind = ?", "system")
	return s.db.Unscoped().Model(&models.Message{}).
		Where("sender_role = ? AND created_at < ?", "system", olderThan).
		Where("chat_id IN (?)", systemChats)
}

// CleanupBroadcasts removes broadcast records older than the cutoff along
// with the system messages they produced.
func (s *MessageService) CleanupBroadcasts(olderThan time.Time) (int64, error) {
	res := s.db.Unscoped().
		Where("created_at < ?", olderThan).
		Delete(&models.Broadcast{})
	if res.Error != nil {
		return 0, res.Error
	}

	s.staleBroadcastMessages(olderThan).Delete(&models.Message{})

	return res.RowsAffected, nil
}
