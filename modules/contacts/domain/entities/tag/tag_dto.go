package tag

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/homewardhq/homeward/pkg/constants"
	"github.com/homewardhq/homeward/pkg/serrors"
)

type CreateDTO struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,max=32,hexcolor"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Color = strings.TrimSpace(d.Color)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	return serrors.Messages(validationErrors), false
}

func (d *CreateDTO) ToEntity(tenantID uuid.UUID) Tag {
	return New(tenantID, d.Name, d.Color)
}
