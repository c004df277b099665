package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ErrPreferenceNotFound distinguishes a user without a saved profile from a
// storage failure.
var ErrPreferenceNotFound = errors.New("preference not found")

// MemoryEntry is one long-term memory item appended after a chat exchange.
type MemoryEntry struct {
	Date     time.Time `json:"date"`
	Summary  string    `json:"summary"`
	RawQuery string    `json:"raw_query"`
}

type UserPreference struct {
	ID              uint                              `gorm:"primaryKey" json:"id"`
	UserID          uint                              `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Budget          string                            `gorm:"column:budget;type:text" json:"budget"`
	Purpose         string                            `gorm:"column:purpose;type:text" json:"purpose"`
	ScreenSize      string                            `gorm:"column:screen_size;type:text" json:"screen_size"`
	PriorityFactors datatypes.JSONSlice[string]       `gorm:"column:priority_factors" json:"priority_factors"`
	PreferredBrands datatypes.JSONSlice[string]       `gorm:"column:preferred_brands" json:"preferred_brands"`
	LongTermMemory  datatypes.JSONSlice[MemoryEntry]  `gorm:"column:long_term_memory" json:"long_term_memory"`
	CreatedAt       time.Time                         `json:"created_at"`
	UpdatedAt       time.Time                         `json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
