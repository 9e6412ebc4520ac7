package models

// APIResponse is the loose shape of a mutation response: success carries
// Message (and ID on create), failure carries Error.
type APIResponse struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
