package dto

// PriorityRequest classifies an issue either for a known user or for an
// inline account snapshot.
type PriorityRequest struct {
	UserID      string       `json:"userId"`
	User        *UserPayload `json:"user"`
	Description string       `json:"description"`
}

// UserPayload is an inline account snapshot.
type UserPayload struct {
	Plan           string   `json:"plan"`
	Role           string   `json:"role"`
	RecentActivity []string `json:"recentActivity"`
}

// PriorityResponse holds the engine's verdict.
type PriorityResponse struct {
	Priority    string `json:"priority"`
	Explanation string `json:"explanation"`
}
