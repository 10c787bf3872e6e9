package utils

// ErrorResponse is the JSON shape for every error payload.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ValidationResponse reports locally detected validation failures; these
// requests never reached the database.
type ValidationResponse struct {
	Message       string   `json:"message"`
	MissingFields []string `json:"missing_fields,omitempty"`
}
