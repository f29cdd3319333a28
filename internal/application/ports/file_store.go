package ports

import "context"

// FileKind tipo de archivo adjunto a una empresa; determina MIME y tamaño permitidos.
type FileKind string

const (
	FileKindImage     FileKind = "image"
	FileKindSignature FileKind = "signature"
)

// FileStore puerto de salida para almacenar logos y firmas electrónicas.
// Store acepta un data URI base64, una referencia ya almacenada (se devuelve igual) o vacío ("").
// Un payload inválido devuelve *domain.ValidationError con el campo field.
type FileStore interface {
	Store(ctx context.Context, kind FileKind, field, identifier, folder, payload string) (string, error)
	// Delete elimina un archivo previamente almacenado; referencias ajenas se ignoran.
	Delete(ctx context.Context, ref string) error
}
