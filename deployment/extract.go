package deployment

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/hupe1980/impulsego/model"
)

// metadataHeaderPath is where deployment archives place the generated
// model metadata header.
const metadataHeaderPath = "model-parameters/model_metadata.h"

// Bundle is an extracted deployment archive.
type Bundle struct {
	// Dir is the directory the archive was extracted into.
	Dir string

	// Metadata is parsed from the bundled model metadata header. Nil when
	// the archive carries no header.
	Metadata *model.Metadata
}

// OpenBundle extracts a deployment archive into dir and parses the bundled
// model metadata header if present.
func OpenBundle(data []byte, dir string) (*Bundle, error) {
	if err := Extract(data, dir); err != nil {
		return nil, err
	}

	b := &Bundle{Dir: dir}

	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(metadataHeaderPath)))
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, err
	}
	defer f.Close()

	md, err := ParseMetadataHeader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", metadataHeaderPath, err)
	}
	b.Metadata = md

	return b, nil
}

// Extract unpacks a zip archive into dir. Entries that would escape dir are
// rejected.
func Extract(data []byte, dir string) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, f := range r.File {
		if err := extractFile(f, dir); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, dir string) error {
	target, err := sanitizePath(dir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, extractMode(f))
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// sanitizePath joins name under dir, rejecting absolute paths and parent
// traversal (zip-slip).
func sanitizePath(dir, name string) (string, error) {
	name = filepath.ToSlash(name)
	if strings.HasPrefix(name, "/") || name == ".." || strings.HasPrefix(name, "../") ||
		strings.Contains(name, "/../") || strings.HasSuffix(name, "/..") {
		return "", fmt.Errorf("illegal entry path %q", name)
	}
	return filepath.Join(dir, filepath.FromSlash(name)), nil
}

func extractMode(f *zip.File) fs.FileMode {
	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	return mode
}
