package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgInvalidRequest     = "Invalid request body"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidDateParam  = "Invalid %s date, expected RFC 3339"

	// Report error messages
	ErrMsgInvalidGranularity = "Invalid granularity. Valid options: day, week, month, quarter, year"

	// Snapshot error messages
	ErrMsgSnapshotSaveFailed    = "Failed to save snapshot"
	ErrMsgSnapshotRestoreFailed = "Failed to restore snapshot"
)

// Success messages for API responses
const (
	MsgMaterialAddedSuccess  = "Material added successfully"
	MsgItemAddedSuccess      = "Item added successfully"
	MsgRecipeSavedSuccess    = "Recipe saved successfully"
	MsgDeletedSuccess        = "Deleted successfully"
	MsgSnapshotSavedSuccess  = "Snapshot saved successfully"
	MsgSnapshotRestoredOK    = "Snapshot restored successfully"
	MsgSettingsUpdatedOK     = "Settings updated successfully"
	MsgProductionStartedOK   = "Production started successfully"
	MsgContractStartedOK     = "Contract production started successfully"
)
