package models

// ThemeMode is the UI theme preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Valid reports whether t is a known theme.
func (t ThemeMode) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// UserSettings is the singleton preferences record, created lazily with
// defaults on first read.
type UserSettings struct {
	Theme         ThemeMode `json:"theme"`
	Notifications bool      `json:"notifications"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() UserSettings {
	return UserSettings{Theme: ThemeDark, Notifications: true}
}

// Validate checks the settings record.
func (s UserSettings) Validate() error {
	if !s.Theme.Valid() {
		return invalidf("unknown theme %q", s.Theme)
	}
	return nil
}
