package formbody

import (
	"errors"
	"os"
)

// File describes one uploaded file streamed to a temporary location during
// multipart decoding. The file on disk lives until Remove is called, which
// the page lifecycle does unconditionally at request teardown.
type File struct {
	Field       string // form field name
	Name        string // original client filename
	Path        string // temporary file path on disk
	ContentType string
	Size        int64
}

// Remove deletes the temporary file from disk.
// Removing an already-removed file is not an error.
func (f *File) Remove() error {
	if f == nil || f.Path == "" {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Files holds decoded uploads with the same scalar-or-sequence contract as
// Values: a field with one file stores *File, repeated fields store []*File.
type Files map[string]any

// First returns the first file uploaded under the field name, or nil.
func (f Files) First(name string) *File {
	switch val := f[name].(type) {
	case *File:
		return val
	case []*File:
		if len(val) == 0 {
			return nil
		}
		return val[0]
	default:
		return nil
	}
}

// All returns every file uploaded under the field name in submission order.
func (f Files) All(name string) []*File {
	switch val := f[name].(type) {
	case *File:
		return []*File{val}
	case []*File:
		return val
	default:
		return nil
	}
}

// RemoveAll deletes every temporary file, collecting any removal errors.
func (f Files) RemoveAll() error {
	var errs []error
	for name := range f {
		for _, file := range f.All(name) {
			if err := file.Remove(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// normalizeFiles applies the scalar-or-sequence rule to grouped uploads.
func normalizeFiles(src map[string][]*File) Files {
	out := make(Files, len(src))
	for name, files := range src {
		if len(files) == 1 {
			out[name] = files[0]
			continue
		}
		out[name] = files
	}
	return out
}
