package http

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
)

type reglasPropias struct {
	RUC      string `json:"ruc" validate:"ruc"`
	Phone    string `json:"phone" validate:"phone"`
	Emision  string `json:"emision" validate:"not_future"`
	Caducidad string `json:"caducidad" validate:"future"`
}

func TestMustRegister_EtiquetaInvalida(t *testing.T) {
	ok := func(validator.FieldLevel) bool { return true }

	assert.Panics(t, func() { mustRegister(validator.New(), "", ok) })
	assert.Panics(t, func() { mustRegister(validator.New(), "ruc", nil) })
	assert.NotPanics(t, func() { NewValidator() })
}

func TestValidator_ReglasPropias(t *testing.T) {
	val := NewValidator()

	valid := reglasPropias{RUC: "1792146739001", Phone: "(02) 245-6789", Emision: "2020-01-15", Caducidad: "2999-01-01"}
	require.NoError(t, val.Struct(valid))

	invalid := reglasPropias{RUC: "1792146738001", Phone: "abc", Emision: "2999-01-01", Caducidad: "2020-01-15"}
	err := val.Struct(invalid)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 4)
	for _, field := range []string{"ruc", "phone", "emision", "caducidad"} {
		assert.Contains(t, vErr.Fields, field)
	}
}
