package entity

import "time"

// Acciones de los eventos de seguridad auditables.
const (
	ActionCreateUser     = "CREATE_USER"
	ActionChangePassword = "CHANGE_PASSWORD"
	ActionAccessDenied   = "ACCESS_DENIED"
	ActionLoginFailed    = "LOGIN_FAILED"
	ActionGrantRole      = "GRANT_ROLE"
	ActionRemoveRole     = "REMOVE_ROLE"
	ActionLockUser       = "LOCK_USER"
	ActionUnlockUser     = "UNLOCK_USER"
	ActionDeleteUser     = "DELETE_USER"
	ActionBruteForce     = "BRUTE_FORCE"
)

// AnonymousSubject sujeto usado cuando el actor no está autenticado (signup).
const AnonymousSubject = "Anonymous"

// SecurityEvent registro inmutable de auditoría. Subject es el actor,
// Object la cuenta afectada, Path el endpoint de origen. Nunca se actualiza
// ni se borra por la operación normal del sistema.
type SecurityEvent struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Action  string    `json:"action"`
	Subject string    `json:"subject"`
	Object  string    `json:"object"`
	Path    string    `json:"path"`
}
