// Package models holds the server-side domain records shared by the auth
// services and the identity directory.
package models

import "time"

// User is a registered identity. Email is the unique handle used for login.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	UserName     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
