package task

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof=pending in_progress completed"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate     string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	AssignedTo  *uint  `json:"assigned_to"`
}

// UpdateTaskRequest is the payload for editing a task
type UpdateTaskRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof=pending in_progress completed"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate     string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	AssignedTo  *uint  `json:"assigned_to"`
}

// UpdateStatusRequest is the payload for the status endpoint
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}

// UpdateProgressRequest is the payload for the progress endpoint
type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required,min=0,max=100"`
}

// AddCommentRequest is the payload for commenting on a task
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
