// internal/domain/models/department.go
package models

import "time"

// Department owns sections and users.
// Name is matched exactly; NameCI exists only for sorting.
type Department struct {
	ID        int64     `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	NameCI    string    `bson:"name_ci" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
