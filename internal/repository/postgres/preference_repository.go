package postgres

import (
	"context"
	"errors"
	"fmt"
	"pickwise/domain"

	"gorm.io/gorm"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{
		DB: db,
	}
}

func (r *PreferenceRepository) FindByUserID(ctx context.Context, userID uint) (domain.UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreference{}, fmt.Errorf("context error: %w", err)
	}

	var pref domain.UserPreference

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserPreference{}, domain.ErrPreferenceNotFound
		}
		return domain.UserPreference{}, fmt.Errorf("failed to find preference: %w", err)
	}

	return pref, nil
}

// Upsert creates or replaces the profile fields for a user, leaving the
// long-term memory untouched.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *domain.UserPreference) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existing domain.UserPreference
	err := r.DB.WithContext(ctx).Where("user_id = ?", pref.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.DB.WithContext(ctx).Create(pref).Error; err != nil {
				return fmt.Errorf("failed to create preference: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to find preference: %w", err)
	}

	updateData := map[string]interface{}{
		"budget":           pref.Budget,
		"purpose":          pref.Purpose,
		"screen_size":      pref.ScreenSize,
		"priority_factors": pref.PriorityFactors,
		"preferred_brands": pref.PreferredBrands,
	}

	result := r.DB.WithContext(ctx).Model(&domain.UserPreference{}).Where("user_id = ?", pref.UserID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update preference: %w", result.Error)
	}

	pref.ID = existing.ID
	return nil
}

// AppendMemory adds one long-term memory entry, creating the preference
// record when the user has none yet.
func (r *PreferenceRepository) AppendMemory(ctx context.Context, userID uint, entry domain.MemoryEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pref domain.UserPreference

		err := tx.Where("user_id = ?", userID).First(&pref).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				pref = domain.UserPreference{UserID: userID}
				pref.LongTermMemory = append(pref.LongTermMemory, entry)
				if err := tx.Create(&pref).Error; err != nil {
					return fmt.Errorf("failed to create preference: %w", err)
				}
				return nil
			}
			return fmt.Errorf("failed to find preference: %w", err)
		}

		pref.LongTermMemory = append(pref.LongTermMemory, entry)

		result := tx.Model(&domain.UserPreference{}).Where("user_id = ?", userID).Update("long_term_memory", pref.LongTermMemory)
		if result.Error != nil {
			return fmt.Errorf("failed to append memory: %w", result.Error)
		}

		return nil
	})
}
