package commands

// Error messages
const (
	ErrRunServiceUnavailable    = "run service unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrRunLogStoreUnavailable   = "run log store unavailable"
	ErrSettingsUnavailable      = "settings service unavailable"
	ErrConfirmationDeclined     = "run cancelled"
)

// Success messages
const (
	MsgConfigurationValid       = "Config is valid"
	MsgNoDifferencesFromDefault = "No differences from default settings."
	MsgNoRunLogs                = "No run logs recorded yet."
	MsgNoRecentFiles            = "No recent files."
	MsgNoFindings               = "No problems found."
)

// Flag defaults
const (
	DefaultLogListLimit = 20
)
