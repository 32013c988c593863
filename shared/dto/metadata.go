package dto

import (
	"venus/shared/constant"
	"venus/shared/model"
	"venus/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	if !model.CreatedAt.IsZero() {
		m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	}

	if !model.UpdatedAt.IsZero() {
		m.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
	}
}
