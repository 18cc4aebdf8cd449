package model

import "time"

// Clinic is a tenant. All patient-facing records are scoped to one clinic.
type Clinic struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
