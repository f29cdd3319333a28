package membership

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// Errores que el llamador puede distinguir aunque vengan de la persistencia; cualquier
// otro fallo dentro de la transacción se reporta como domain.ErrTransactionAborted.
var passthrough = []error{
	domain.ErrValidation,
	domain.ErrNotAMember,
	domain.ErrUserNotFound,
	domain.ErrForbidden,
	domain.ErrLastOwner,
}

// ruleError marca un error producido por una regla de negocio (p. ej. una transición
// de estado inválida) y no por el almacenamiento.
type ruleError struct {
	err error
}

func (e ruleError) Error() string { return e.err.Error() }
func (e ruleError) Unwrap() error { return e.err }

func rule(err error) error {
	if err == nil {
		return nil
	}
	return ruleError{err: err}
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var re ruleError
	if errors.As(err, &re) {
		return re.err
	}
	for _, target := range passthrough {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrTransactionAborted, err)
}
