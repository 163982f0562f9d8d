package settings

import "errors"

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings: settings service is required")
