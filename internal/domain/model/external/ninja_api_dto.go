package external

// APIErrorResponse represents error responses from the cities API
type APIErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *APIErrorResponse) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
