package entity

import "time"

// User operador de la aplicación (un solo tenant, sin roles).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
