package sri

import (
	"fmt"
	"unicode"
)

// Tipos de RUC según el tercer dígito.
const (
	RUCTypeNatural = "natural" // 0-5: persona natural (cédula + establecimiento)
	RUCTypePublic  = "public"  // 6: entidad pública
	RUCTypePrivate = "private" // 9: sociedad privada o extranjera
)

// códigos de provincia válidos: 01-24 y 30 (ecuatorianos en el exterior).
const (
	minProvince     = 1
	maxProvince     = 24
	foreignProvince = 30
)

var (
	privateWeights = [9]int{4, 3, 2, 7, 6, 5, 4, 3, 2}
	publicWeights  = [8]int{3, 2, 7, 6, 5, 4, 3, 2}
)

// NormalizeRUC elimina todo lo que no sea dígito ("1792146739-001" -> "1792146739001").
func NormalizeRUC(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// ValidateRUC valida longitud, provincia, tipo de contribuyente, dígito verificador
// (módulo 10 para personas naturales, módulo 11 para sociedades y entidades públicas)
// y código de establecimiento. Devuelve el tipo de RUC.
func ValidateRUC(ruc string) (string, error) {
	if len(ruc) != 13 {
		return "", fmt.Errorf("sri: el RUC debe tener exactamente 13 dígitos, se recibieron %d", len(ruc))
	}
	d := make([]int, 13)
	for i, r := range ruc {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("sri: el RUC debe contener solo dígitos")
		}
		d[i] = int(r - '0')
	}

	province := d[0]*10 + d[1]
	if (province < minProvince || province > maxProvince) && province != foreignProvince {
		return "", fmt.Errorf("sri: código de provincia inválido: %02d", province)
	}

	switch third := d[2]; {
	case third < 6:
		if d[9] != mod10(d[:9]) {
			return "", fmt.Errorf("sri: dígito verificador inválido")
		}
		if establishment(d[10:]) == 0 {
			return "", fmt.Errorf("sri: código de establecimiento inválido")
		}
		return RUCTypeNatural, nil
	case third == 6:
		check, ok := mod11(d[:8], publicWeights[:])
		if !ok || d[8] != check {
			return "", fmt.Errorf("sri: dígito verificador inválido")
		}
		if establishment(d[9:]) == 0 {
			return "", fmt.Errorf("sri: código de establecimiento inválido")
		}
		return RUCTypePublic, nil
	case third == 9:
		check, ok := mod11(d[:9], privateWeights[:])
		if !ok || d[9] != check {
			return "", fmt.Errorf("sri: dígito verificador inválido")
		}
		if establishment(d[10:]) == 0 {
			return "", fmt.Errorf("sri: código de establecimiento inválido")
		}
		return RUCTypePrivate, nil
	default:
		return "", fmt.Errorf("sri: tercer dígito inválido: %d", third)
	}
}

// mod10 coeficientes 2,1,2,1... restando 9 a los productos mayores a 9.
func mod10(digits []int) int {
	var sum int
	for i, v := range digits {
		if i%2 == 0 {
			v *= 2
			if v > 9 {
				v -= 9
			}
		}
		sum += v
	}
	return (10 - sum%10) % 10
}

// mod11 devuelve false cuando el dígito resultante sería 10 (RUC imposible).
func mod11(digits, weights []int) (int, bool) {
	var sum int
	for i, v := range digits {
		sum += v * weights[i]
	}
	check := 11 - sum%11
	switch check {
	case 11:
		return 0, true
	case 10:
		return 0, false
	default:
		return check, true
	}
}

func establishment(digits []int) int {
	n := 0
	for _, v := range digits {
		n = n*10 + v
	}
	return n
}
