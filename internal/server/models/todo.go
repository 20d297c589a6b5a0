package models

// Todo is a task owned by exactly one user.
type Todo struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    int     `json:"priority"`
	Complete    bool    `json:"complete"`
	OwnerID     int64   `json:"owner_id"`
}
