package services

// ConflictUserMessage is the user-facing text for optimistic-lock conflicts.
const ConflictUserMessage = "This record was modified by someone else. Please reload and try again."

// ConflictError signals that an edit carried a stale version. Current holds
// the freshly loaded authoritative record so the client can restart the edit
// from current data instead of just seeing an error.
type ConflictError struct {
	Current interface{}
}

func (e *ConflictError) Error() string {
	return "record was modified concurrently"
}
