package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Conversation struct {
	ID        uuid.UUID                    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uint                         `gorm:"column:user_id;not null;index" json:"user_id"`
	Title     string                       `gorm:"column:title;type:text" json:"title"`
	Messages  datatypes.JSONSlice[Message] `gorm:"column:messages" json:"messages"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

func (Conversation) TableName() string {
	return "conversations"
}
