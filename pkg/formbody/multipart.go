package formbody

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
)

var errTooLarge = errors.New("body exceeds size limit")

// MultipartConfig configures multipart/form-data decoding.
type MultipartConfig struct {
	// TempDir is where file parts are streamed. Empty uses the OS default.
	TempDir string

	// MaxFileSize caps each uploaded file. Zero uses DefaultMaxFileSize.
	MaxFileSize int64

	// MaxFieldSize caps each non-file field value. Zero uses DefaultMaxFieldSize.
	MaxFieldSize int64
}

// Multipart decoding limits.
const (
	DefaultMaxFileSize  = 32 << 20 // 32MB
	DefaultMaxFieldSize = 1 << 20  // 1MB
)

// DecodeMultipart decodes a multipart/form-data body, streaming file parts to
// temporary files and collecting regular fields into normalized Values.
//
// It activates only for POST, PUT, and PATCH requests whose content type is
// multipart/form-data; everything else passes through untouched (nil maps,
// nil error). On a malformed payload it returns a *DecodeError and removes
// any temporary files already written.
func DecodeMultipart(r *http.Request, cfg *MultipartConfig) (Values, Files, error) {
	if !bodyMethods[r.Method] || mediaType(r) != "multipart/form-data" {
		return nil, nil, nil
	}
	if cfg == nil {
		cfg = &MultipartConfig{}
	}
	maxFile := cfg.MaxFileSize
	if maxFile <= 0 {
		maxFile = DefaultMaxFileSize
	}
	maxField := cfg.MaxFieldSize
	if maxField <= 0 {
		maxField = DefaultMaxFieldSize
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, nil, decodeErr(err)
	}

	fields := url.Values{}
	grouped := map[string][]*File{}
	fail := func(err error) (Values, Files, error) {
		normalizeFiles(grouped).RemoveAll()
		return nil, nil, err
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(decodeErr(err))
		}

		name := part.FormName()
		if name == "" {
			continue
		}

		if part.FileName() == "" {
			raw, err := io.ReadAll(io.LimitReader(part, maxField+1))
			if err != nil {
				return fail(decodeErr(err))
			}
			if int64(len(raw)) > maxField {
				return fail(decodeErrStatus(errTooLarge, http.StatusRequestEntityTooLarge))
			}
			fields.Add(name, string(raw))
			continue
		}

		file, err := streamPart(part, name, part.FileName(), part.Header.Get("Content-Type"), cfg.TempDir, maxFile)
		if err != nil {
			return fail(err)
		}
		grouped[name] = append(grouped[name], file)
	}

	return Normalize(fields), normalizeFiles(grouped), nil
}

// streamPart copies one file part to a temporary file without buffering it in
// memory.
func streamPart(part io.Reader, field, filename, contentType, tempDir string, maxSize int64) (*File, error) {
	tmp, err := os.CreateTemp(tempDir, "formbody-*")
	if err != nil {
		return nil, decodeErrStatus(err, http.StatusInternalServerError)
	}

	size, err := io.Copy(tmp, io.LimitReader(part, maxSize+1))
	closeErr := tmp.Close()

	file := &File{
		Field:       field,
		Name:        filename,
		Path:        tmp.Name(),
		ContentType: contentType,
		Size:        size,
	}

	switch {
	case err != nil:
		file.Remove()
		return nil, decodeErr(err)
	case closeErr != nil:
		file.Remove()
		return nil, decodeErrStatus(closeErr, http.StatusInternalServerError)
	case size > maxSize:
		file.Remove()
		return nil, decodeErrStatus(errTooLarge, http.StatusRequestEntityTooLarge)
	}

	return file, nil
}
