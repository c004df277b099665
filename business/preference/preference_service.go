package preference

import (
	"context"
	"errors"
	"fmt"
	"pickwise/business/recommend"
	"pickwise/domain"

	"gorm.io/datatypes"
)

type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.UserPreference, error)
	Upsert(ctx context.Context, pref *domain.UserPreference) error
}

var knownFactors = map[string]bool{
	recommend.FactorPrice:       true,
	recommend.FactorCPU:         true,
	recommend.FactorGPU:         true,
	recommend.FactorPortability: true,
	recommend.FactorBattery:     true,
	recommend.FactorBrand:       true,
}

type PreferenceService struct {
	prefRepo PreferenceRepository
}

func NewPreferenceService(prefRepo PreferenceRepository) *PreferenceService {
	return &PreferenceService{
		prefRepo: prefRepo,
	}
}

// GetByUserID returns the stored preference profile, or an empty profile
// for users that never saved one. Storage failures are not an empty profile.
func (s *PreferenceService) GetByUserID(ctx context.Context, userID uint) (domain.UserPreference, error) {
	pref, err := s.prefRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferenceNotFound) {
			return domain.UserPreference{UserID: userID}, nil
		}
		return domain.UserPreference{}, err
	}

	return pref, nil
}

// Update saves the profile fields. Priority factors are validated against
// the scoring engine's factor names so a typo cannot silently skew every
// future recommendation.
func (s *PreferenceService) Update(ctx context.Context, userID uint, budget, purpose, screenSize string, priorityFactors, preferredBrands []string) (domain.UserPreference, error) {
	for _, factor := range priorityFactors {
		if !knownFactors[factor] {
			return domain.UserPreference{}, fmt.Errorf("unknown priority factor %q", factor)
		}
	}

	pref := domain.UserPreference{
		UserID:          userID,
		Budget:          budget,
		Purpose:         purpose,
		ScreenSize:      screenSize,
		PriorityFactors: datatypes.NewJSONSlice(priorityFactors),
		PreferredBrands: datatypes.NewJSONSlice(preferredBrands),
	}

	if err := s.prefRepo.Upsert(ctx, &pref); err != nil {
		return domain.UserPreference{}, err
	}

	return s.prefRepo.FindByUserID(ctx, userID)
}
