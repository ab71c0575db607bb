package user

// CreateUserRequest is the admin payload for adding a user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=6"`
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=admin project_manager team_member"`
}

// UpdateUserRequest is the admin payload for editing a user
type UpdateUserRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=admin project_manager team_member"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// UpdateProfileRequest is the payload for editing one's own profile
type UpdateProfileRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Avatar   string `json:"avatar"`
}

// ChangePasswordRequest is the payload for changing one's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}
