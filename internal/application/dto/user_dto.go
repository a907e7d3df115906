package dto

// LoginRequest formulario de inicio de sesión.
type LoginRequest struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
}

// LoginResult token de sesión y datos mínimos del usuario.
type LoginResult struct {
	Token    string
	UserID   string
	Username string
}

// CreateUserRequest alta de usuario con su rol (usado por el comando de datos de ejemplo).
// Branch es el código de la sucursal; vacío para super_admin.
type CreateUserRequest struct {
	Username    string `validate:"required,max=150"`
	Email       string `validate:"omitempty,email"`
	Password    string `validate:"required,min=8"`
	IsSuperuser bool
	Role        string `validate:"required,oneof=super_admin branch_manager inventory_officer"`
	BranchCode  string
}
