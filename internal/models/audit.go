// Package models contains data structures for the board's domain models.
package models

import "time"

// Audit holds the creation and update metadata shared by every entity.
// CreatedBy is the ownership anchor and never changes after creation.
type Audit struct {
	CreatedBy string     `gorm:"size:255;not null;index" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false;not null" json:"created_at"`
	UpdatedBy *string    `gorm:"size:255" json:"updated_by,omitempty"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

// NewAudit returns the audit snapshot of a freshly created entity.
func NewAudit(createdBy string, now time.Time) Audit {
	return Audit{CreatedBy: createdBy, CreatedAt: now}
}

// Touch returns a copy of the audit stamped with the given updater.
func (a Audit) Touch(updatedBy string, now time.Time) Audit {
	return Audit{
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedBy: &updatedBy,
		UpdatedAt: &now,
	}
}

// OwnedBy reports whether author is the entity's creator.
func (a Audit) OwnedBy(author string) bool {
	return a.CreatedBy == author
}
