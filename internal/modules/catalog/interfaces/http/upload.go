package http

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/tempfiles"
)

const multipartMemory = 32 << 20

// uploadForm is a parsed request form whose file parts were spooled to disk.
type uploadForm struct {
	r     *http.Request
	files map[string]string
}

// parseUploadForm reads a multipart (or url-encoded) form and spools the
// named file fields into dir. Callers must call cleanup.
func parseUploadForm(w http.ResponseWriter, r *http.Request, dir string, maxSize int64, fileFields ...string) (*uploadForm, error) {
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	}
	form := &uploadForm{r: r, files: map[string]string{}}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("%w: invalid form: %v", apperr.ErrValidation, err)
		}
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: invalid form: %v", apperr.ErrValidation, err)
		}
		return form, nil
	}

	for _, field := range fileFields {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			form.cleanup()
			return nil, fmt.Errorf("%w: %s: %v", apperr.ErrValidation, field, err)
		}
		path, err := tempfiles.Spool(dir, header.Filename, file)
		file.Close()
		if err != nil {
			form.cleanup()
			return nil, err
		}
		form.files[field] = path
	}
	return form, nil
}

func (f *uploadForm) value(key string) string {
	return strings.TrimSpace(f.r.FormValue(key))
}

// optional returns nil for absent or blank fields.
func (f *uploadForm) optional(key string) *string {
	if v := f.value(key); v != "" {
		return &v
	}
	return nil
}

func (f *uploadForm) file(field string) string {
	return f.files[field]
}

func (f *uploadForm) cleanup() {
	for _, path := range f.files {
		os.Remove(path)
	}
}
