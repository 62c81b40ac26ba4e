package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// UserVector is the persisted 7-dimensional similarity vector used by
// the collaborative filter: normalized BMI, normalized age, activity
// ordinal, a 3-slot medical one-hot and the mean rating. It is
// refreshed whenever the profile, goal or feedback history changes.
type UserVector struct {
	UserID    uuid.UUID `gorm:"type:uuid;primarykey" json:"user_id"`
	UpdatedAt time.Time `json:"updated_at"`

	Embedding pgvector.Vector `gorm:"type:vector(7)" json:"-"`
}

func (UserVector) TableName() string {
	return "user_vectors"
}
