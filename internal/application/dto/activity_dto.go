package dto

import "time"

// ActivityLogFilter filtros y paginación de GET /api/activity-logs.
type ActivityLogFilter struct {
	PageRequest
	UserID string `query:"user_id"`
	Action string `query:"action"`
}

// ActivityUserSummary resumen del usuario que generó la entrada.
type ActivityUserSummary struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}

// ActivityLogResponse entrada del registro de actividad.
type ActivityLogResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id,omitempty"`
	Action    string               `json:"action"`
	Details   string               `json:"details"`
	IPAddress string               `json:"ip_address"`
	CreatedAt time.Time            `json:"created_at"`
	User      *ActivityUserSummary `json:"user,omitempty"`
}

// ActivityLogPage página de entradas con metadatos.
type ActivityLogPage struct {
	Logs []ActivityLogResponse `json:"logs"`
	PageResponse
}
