package sri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/pkg/sri"
)

func TestValidateRUC_Validos(t *testing.T) {
	tests := []struct {
		name string
		ruc  string
		want string
	}{
		{"sociedad privada Pichincha", "1792146739001", sri.RUCTypePrivate},
		{"sociedad privada Guayas", "0990017514001", sri.RUCTypePrivate},
		{"persona natural", "1710034065001", sri.RUCTypeNatural},
		{"entidad pública", "1760001550001", sri.RUCTypePublic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sri.ValidateRUC(tt.ruc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRUC_Invalidos(t *testing.T) {
	tests := []struct {
		name string
		ruc  string
	}{
		{"longitud corta", "179214673900"},
		{"con letras", "17921467390A1"},
		{"provincia inexistente", "9992146739001"},
		{"tercer dígito 7", "1772146739001"},
		{"dígito verificador privado alterado", "1792146738001"},
		{"dígito verificador natural alterado", "1710034064001"},
		{"establecimiento cero", "1792146739000"},
		{"dígito verificador público alterado", "1760001540001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sri.ValidateRUC(tt.ruc)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeRUC(t *testing.T) {
	assert.Equal(t, "1792146739001", sri.NormalizeRUC("1792146739-001"))
	assert.Equal(t, "1792146739001", sri.NormalizeRUC(" 179.214.6739 001 "))
	assert.Equal(t, "", sri.NormalizeRUC("abc"))
}
