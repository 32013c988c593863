package model

import "time"

// Metadata is embedded by stored entities. Entries written before the field
// existed decode with zero times and are omitted from responses.
type Metadata struct {
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

func NewMetadata(at time.Time, by string) Metadata {
	return Metadata{
		CreatedAt: at,
		UpdatedAt: at,
		CreatedBy: by,
		UpdatedBy: by,
	}
}

func (m *Metadata) Touch(at time.Time, by string) {
	m.UpdatedAt = at
	m.UpdatedBy = by
}
