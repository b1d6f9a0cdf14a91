package models

// Preferences holds the app-wide settings document: the selected
// language and, when the app lock is enabled, the passcode hash.
type Preferences struct {
	Language     string `json:"language"`
	PasscodeHash string `json:"passcodeHash,omitempty"`
}
