package dto

// SignupRequest entrada para registro (password en texto, se hashea en el servicio).
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Lastname string `json:"lastname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12"`
}

// EmployeeResponse salida de una cuenta (sin hash de password).
type EmployeeResponse struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Lastname string   `json:"lastname"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y la cuenta autenticada.
type LoginResponse struct {
	Token string           `json:"token"`
	User  EmployeeResponse `json:"user"`
}

// NewPasswordRequest entrada para cambio de contraseña.
type NewPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=12"`
}

// PasswordChangedResponse confirmación del cambio de contraseña.
type PasswordChangedResponse struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// RoleUpdateRequest petición GRANT/REMOVE de un rol.
type RoleUpdateRequest struct {
	User      string `json:"user" validate:"required,email"`
	Role      string `json:"role" validate:"required"`
	Operation string `json:"operation" validate:"required,oneof=GRANT REMOVE"`
}

// LockRequest petición LOCK/UNLOCK de una cuenta.
type LockRequest struct {
	User      string `json:"user" validate:"required,email"`
	Operation string `json:"operation" validate:"required,oneof=LOCK UNLOCK"`
}

// LockResponse confirmación legible del nuevo estado de bloqueo.
type LockResponse struct {
	Status string `json:"status"`
}

// DeleteResponse confirmación de borrado de cuenta.
type DeleteResponse struct {
	User   string `json:"user"`
	Status string `json:"status"`
}
