package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Chat is a conversation between operators and a single user. Direct chats
// carry admin replies; system chats carry broadcast fan-out messages and are
// hidden from the admin chat list.
type Chat struct {
	gorm.Model
	UserID        uint       `json:"userID" gorm:"not null;index"`
	Kind          string     `json:"kind" gorm:"type:varchar(20);default:'direct';index"` // direct, system
	LastMessageAt *time.Time `json:"lastMessageAt" gorm:"index"`

	User     User      `json:"user" gorm:"foreignKey:UserID"`
	Messages []Message `json:"messages"`
}

// Message is a single entry in a chat. ReadBy holds the IDs of users who
// have seen it; unread counts are derived from it client-side on poll.
type Message struct {
	gorm.Model
	ChatID     uint           `json:"chatID" gorm:"not null;index"`
	SenderID   uint           `json:"senderID" gorm:"index"`
	SenderRole string         `json:"senderRole" gorm:"type:varchar(20)"` // user, host, admin, system
	Text       string         `json:"text" gorm:"type:text"`
	ReadBy     datatypes.JSON `json:"readBy"`

	Sender *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

// ReadByIDs decodes the ReadBy marker list.
func (m *Message) ReadByIDs() []uint {
	ids := []uint{}
	if m.ReadBy != nil {
		_ = json.Unmarshal(m.ReadBy, &ids)
	}
	return ids
}

// MarkReadBy appends the user to the ReadBy list if absent and reports
// whether the list changed.
func (m *Message) MarkReadBy(userID uint) bool {
	ids := m.ReadByIDs()
	for _, id := range ids {
		if id == userID {
			return false
		}
	}
	ids = append(ids, userID)
	encoded, err := json.Marshal(ids)
	if err != nil {
		return false
	}
	m.ReadBy = datatypes.JSON(encoded)
	return true
}
