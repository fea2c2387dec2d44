package dto

type TaskItem struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	User        string `json:"user"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateTaskRequest leaves presence checks to the service so that a missing
// title or description gets its own message.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"max=255"`
	Description string `json:"description" binding:"max=65535"`
	Status      string `json:"status" binding:"omitempty,oneof=pending completed"`
}

// UpdateTaskRequest fields left empty keep their stored value.
type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"max=255"`
	Description string `json:"description" binding:"max=65535"`
	Status      string `json:"status" binding:"omitempty,oneof=pending completed"`
}

type DeleteTaskResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
