package entity

import "time"

// ActivityLog entrada de auditoría de acciones de usuario.
type ActivityLog struct {
	ID        string
	UserID    string // referencia débil a User.ID
	Action    string
	Details   string
	IPAddress string
	CreatedAt time.Time
}

// ActivityLogEntry entrada con el resumen del usuario que la generó (si aún existe).
type ActivityLogEntry struct {
	ActivityLog
	Username string
	FullName string
	Role     string
}
