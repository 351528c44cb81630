package domain

import "time"

// HistoryItem is one row of the append-only brief history.
type HistoryItem struct {
	ID         string    `json:"id"`
	BriefID    string    `json:"briefId"`
	Title      string    `json:"title"`
	Audience   Audience  `json:"audience"`
	ViewCount  int       `json:"viewCount"`
	LastViewed time.Time `json:"lastViewed"`
	IsSaved    bool      `json:"isSaved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SavedItem is a brief the user pinned, with optional notes.
type SavedItem struct {
	ID      string    `json:"id"`
	BriefID string    `json:"briefId"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes,omitempty"`
	SavedAt time.Time `json:"savedAt"`
}

// Settings is the single per-deployment settings record.
type Settings struct {
	Theme           string `json:"theme"`
	DefaultAudience string `json:"defaultAudience"`
	AutoSave        bool   `json:"autoSave"`
	Language        string `json:"language"`
	MaxHistoryItems int    `json:"maxHistoryItems"`
}

// DefaultSettings returns the record used before any PATCH has been applied.
func DefaultSettings() Settings {
	return Settings{
		Theme:           "system",
		DefaultAudience: string(AudienceManager),
		AutoSave:        true,
		Language:        "en",
		MaxHistoryItems: 50,
	}
}

// SettingsPatch carries partial updates; nil fields are left unchanged.
type SettingsPatch struct {
	Theme           *string `json:"theme"`
	DefaultAudience *string `json:"defaultAudience"`
	AutoSave        *bool   `json:"autoSave"`
	Language        *string `json:"language"`
	MaxHistoryItems *int    `json:"maxHistoryItems"`
}

// Post is the legacy image-post record kept for API compatibility.
type Post struct {
	ID        string    `json:"id"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}
