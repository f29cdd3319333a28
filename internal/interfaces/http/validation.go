package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // zoneinfo embebida para la regla timezone

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/pkg/sri"
)

var phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{7,20}$`)

// Validator valida DTOs con las etiquetas `validate` y devuelve *domain.ValidationError
// con claves iguales a los nombres JSON.
type Validator struct {
	v *validator.Validate
}

// NewValidator registra las reglas propias: ruc, phone, not_future y future.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "ruc", func(fl validator.FieldLevel) bool {
		_, err := sri.ValidateRUC(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "not_future", func(fl validator.FieldLevel) bool {
		d, ok := parseDay(fl.Field().String())
		return !ok || !d.After(today())
	})
	mustRegister(v, "future", func(fl validator.FieldLevel) bool {
		d, ok := parseDay(fl.Field().String())
		return !ok || d.After(today())
	})
	return &Validator{v: v}
}

// mustRegister registra una regla propia; una etiqueta inválida es un error de programación.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: registrar %q: %v", tag, err))
	}
}

// Struct valida s. Los errores de etiqueta se agrupan por campo.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var vErr domain.ValidationError
	for _, fe := range fieldErrs {
		vErr.Add(fieldKey(fe), message(fe))
	}
	return vErr.OrNil()
}

// bind parsea el cuerpo JSON en dst y lo valida. Escribe la respuesta de error y devuelve false si falla.
func (val *Validator) bind(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, badBody(c)
	}
	if n, ok := dst.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	if err := val.Struct(dst); err != nil {
		return false, writeError(c, err)
	}
	return true, nil
}

// fieldKey ruta JSON sin el nombre del struct raíz (settings.invoice_due_days).
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "El campo es obligatorio."
	case "email":
		return "Debe ser un correo electrónico válido."
	case "max":
		return "No debe superar " + fe.Param() + " caracteres."
	case "min":
		return "Debe tener al menos " + fe.Param() + " caracteres."
	case "len":
		return "Debe tener exactamente " + fe.Param() + " caracteres."
	case "numeric":
		return "Solo se permiten dígitos."
	case "ruc":
		return "El RUC no es válido."
	case "phone":
		return "El teléfono no tiene un formato válido."
	case "url":
		return "Debe ser una URL válida."
	case "oneof":
		return "Debe ser uno de: " + fe.Param() + "."
	case "datetime":
		return "Debe tener el formato " + dto.DateLayout + "."
	case "not_future":
		return "La fecha no puede ser futura."
	case "future":
		return "La fecha debe ser posterior a hoy."
	case "timezone":
		return "La zona horaria no es válida."
	case "uuid":
		return "Debe ser un identificador válido."
	default:
		return "El valor no es válido."
	}
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
