// internal/domain/models/section.go
package models

import "time"

// Section is a routing destination inside a department.
type Section struct {
	ID           int64     `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	DepartmentID int64     `bson:"department_id" json:"department_id"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
