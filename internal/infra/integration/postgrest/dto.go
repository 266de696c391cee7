package postgrest

// errorResponse is the PostgREST error envelope.
type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}
