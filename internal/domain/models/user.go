// internal/domain/models/user.go
package models

import "time"

// User is an actor referenced by records (created_by, closed_by, ...).
type User struct {
	ID           int64     `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"` // lowercased, unique
	DepartmentID int64     `bson:"department_id" json:"department_id"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
