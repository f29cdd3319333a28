package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain"
)

var _ ports.FileStore = (*LocalFileStore)(nil)

type kindRules struct {
	pattern *regexp.Regexp
	maxSize int
}

var rules = map[ports.FileKind]kindRules{
	ports.FileKindImage: {
		pattern: regexp.MustCompile(`^data:(image/(?:jpeg|jpg|png|gif|svg\+xml|webp));base64,(.+)$`),
		maxSize: 2 * 1024 * 1024,
	},
	ports.FileKindSignature: {
		pattern: regexp.MustCompile(`^data:(application/x-pkcs12|application/octet-stream);base64,(.+)$`),
		maxSize: 5 * 1024 * 1024,
	},
}

var dataURIPrefix = regexp.MustCompile(`^data:[^;]+;base64,`)

var extensions = map[string]string{
	"image/jpeg":               "jpg",
	"image/jpg":                "jpg",
	"image/png":                "png",
	"image/gif":                "gif",
	"image/svg+xml":            "svg",
	"image/webp":               "webp",
	"application/x-pkcs12":     "p12",
	"application/octet-stream": "p12",
}

// LocalFileStore guarda archivos en disco bajo root y los expone como publicURL/<folder>/<archivo>.
type LocalFileStore struct {
	root      string
	publicURL string
	now       func() time.Time
}

// NewLocalFileStore construye el almacenamiento local.
func NewLocalFileStore(root, publicURL string) *LocalFileStore {
	return &LocalFileStore{root: root, publicURL: strings.TrimRight(publicURL, "/"), now: time.Now}
}

// Store decodifica un data URI y lo escribe en disco. Referencias que no son data URI se devuelven sin cambios.
func (s *LocalFileStore) Store(ctx context.Context, kind ports.FileKind, field, identifier, folder, payload string) (string, error) {
	if payload == "" {
		return "", nil
	}
	if !dataURIPrefix.MatchString(payload) {
		return payload, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r, ok := rules[kind]
	if !ok {
		return "", fmt.Errorf("%w: tipo de archivo %q", domain.ErrInvalidInput, kind)
	}
	m := r.pattern.FindStringSubmatch(payload)
	if m == nil {
		return "", domain.NewValidationError(field, "Formato de base64 no válido para este tipo de archivo")
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", domain.NewValidationError(field, "Contenido base64 inválido")
	}
	if len(data) > r.maxSize {
		return "", domain.NewValidationError(field, fmt.Sprintf("El archivo no puede exceder %d MB", r.maxSize/(1024*1024)))
	}

	name := fmt.Sprintf("%s_%s_%s.%s", sanitize(identifier), s.now().Format("2006-01-02_15-04-05"), uuid.New().String(), extensions[m[1]])
	dir := filepath.Join(s.root, sanitize(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o640); err != nil {
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return s.publicURL + "/" + sanitize(folder) + "/" + name, nil
}

// Delete borra un archivo creado por Store. Referencias externas se ignoran.
func (s *LocalFileStore) Delete(_ context.Context, ref string) error {
	rel, ok := strings.CutPrefix(ref, s.publicURL+"/")
	if !ok || rel == "" {
		return nil
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	root, err := filepath.Abs(s.root)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return fmt.Errorf("%w: ruta fuera del almacenamiento", domain.ErrInvalidInput)
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

func sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(s, "_")
	if s == "" {
		return "files"
	}
	return s
}
