package models

const (
	RoleSystem = "system"
	RoleHuman  = "human"
	RoleAI     = "ai"
)

// Message is one opaque conversation turn. The router consumes the most
// recent turns as context; it never mutates or persists history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
