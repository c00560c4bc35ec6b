package dto

// Error represents a standard error response. Kind is the stable machine
// readable taxonomy value; the message is for humans.
type Error struct {
	Error string `json:"error" example:"error message"`
	Kind  string `json:"kind,omitempty" example:"permission_denied"`
}
