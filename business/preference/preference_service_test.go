package preference

import (
	"context"
	"errors"
	"testing"

	"pickwise/business/recommend"
	"pickwise/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrefRepo struct {
	pref    domain.UserPreference
	findErr error
	saved   *domain.UserPreference
}

func (f *fakePrefRepo) FindByUserID(_ context.Context, _ uint) (domain.UserPreference, error) {
	if f.findErr != nil {
		return domain.UserPreference{}, f.findErr
	}
	return f.pref, nil
}

func (f *fakePrefRepo) Upsert(_ context.Context, pref *domain.UserPreference) error {
	f.saved = pref
	f.pref = *pref
	return nil
}

func TestGetByUserID_AbsentProfileIsEmptyNotAnError(t *testing.T) {
	repo := &fakePrefRepo{findErr: domain.ErrPreferenceNotFound}
	svc := NewPreferenceService(repo)

	pref, err := svc.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), pref.UserID)
	assert.Empty(t, pref.PriorityFactors)
}

func TestGetByUserID_StorageFailureSurfaces(t *testing.T) {
	repo := &fakePrefRepo{findErr: errors.New("connection refused")}
	svc := NewPreferenceService(repo)

	_, err := svc.GetByUserID(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpdate_RejectsUnknownFactor(t *testing.T) {
	repo := &fakePrefRepo{}
	svc := NewPreferenceService(repo)

	_, err := svc.Update(context.Background(), 7, "3000-5000", "gaming", "15.6",
		[]string{recommend.FactorPrice, "misspelt"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misspelt")
	assert.Nil(t, repo.saved)
}

func TestUpdate_SavesValidProfile(t *testing.T) {
	repo := &fakePrefRepo{}
	svc := NewPreferenceService(repo)

	pref, err := svc.Update(context.Background(), 7, "3000-5000", "gaming", "15.6",
		[]string{recommend.FactorPrice, recommend.FactorGPU}, []string{"Asus"})
	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.Equal(t, "3000-5000", pref.Budget)
	assert.Equal(t, []string{"Price", "GPU Performance"}, []string(pref.PriorityFactors))
}
