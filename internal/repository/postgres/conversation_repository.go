package postgres

import (
	"context"
	"errors"
	"fmt"
	"pickwise/domain"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{
		DB: db,
	}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(conv).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	return nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Conversation{}, fmt.Errorf("context error: %w", err)
	}

	var conv domain.Conversation

	err := r.DB.WithContext(ctx).First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Conversation{}, errors.New("conversation not found")
		}
		return domain.Conversation{}, fmt.Errorf("failed to find conversation: %w", err)
	}

	return conv, nil
}

func (r *ConversationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var convs []domain.Conversation
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find conversations: %w", err)
	}

	return convs, nil
}

// AppendMessages adds messages to an existing conversation.
func (r *ConversationRepository) AppendMessages(ctx context.Context, id uuid.UUID, messages []domain.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(messages) == 0 {
		return nil
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conv domain.Conversation

		if err := tx.First(&conv, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("conversation not found")
			}
			return fmt.Errorf("failed to find conversation: %w", err)
		}

		conv.Messages = append(conv.Messages, messages...)

		updateData := map[string]interface{}{
			"messages":   conv.Messages,
			"updated_at": time.Now(),
		}

		result := tx.Model(&domain.Conversation{}).Where("id = ?", id).Updates(updateData)
		if result.Error != nil {
			return fmt.Errorf("failed to append messages: %w", result.Error)
		}

		return nil
	})
}

func (r *ConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Conversation{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete conversation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("conversation not found")
	}

	return nil
}
