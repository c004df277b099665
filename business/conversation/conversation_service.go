package conversation

import (
	"context"
	"errors"
	"pickwise/domain"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Conversation, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConversationService struct {
	convRepo ConversationRepository
}

func NewConversationService(convRepo ConversationRepository) *ConversationService {
	return &ConversationService{
		convRepo: convRepo,
	}
}

// Start creates an empty conversation owned by the user. The first chat
// message fills it in.
func (s *ConversationService) Start(ctx context.Context, userID uint, title string) (domain.Conversation, error) {
	if title == "" {
		title = "New conversation"
	}

	conv := domain.Conversation{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
	}

	if err := s.convRepo.Create(ctx, &conv); err != nil {
		return domain.Conversation{}, err
	}

	return conv, nil
}

func (s *ConversationService) GetByID(ctx context.Context, userID uint, id uuid.UUID) (domain.Conversation, error) {
	conv, err := s.convRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Conversation{}, err
	}
	if conv.UserID != userID {
		return domain.Conversation{}, errors.New("conversation not found")
	}

	return conv, nil
}

func (s *ConversationService) ListByUser(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	return s.convRepo.FindByUserID(ctx, userID)
}

func (s *ConversationService) Delete(ctx context.Context, userID uint, id uuid.UUID) error {
	conv, err := s.convRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if conv.UserID != userID {
		return errors.New("conversation not found")
	}

	return s.convRepo.Delete(ctx, id)
}
