package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/voxelspace/mgcbgen/internal/domain"
)

// WriterOptions contains options for the manifest writer
type WriterOptions struct {
	// Atomic writes to a temporary file and renames it over the
	// destination on Commit.
	Atomic bool
	// DryRun sends the manifest to Preview instead of the destination
	DryRun bool
	// Preview receives the manifest in dry-run mode (discarded when nil).
	// Nothing reaches it unless the run commits.
	Preview io.Writer
}

// Writer is a scoped handle on the output manifest. Close must always be
// called; Commit marks a successful run.
type Writer struct {
	path    string
	tmpPath string
	atomic  bool
	file    *os.File
	buf     *bufio.Writer
	written int64
	done    bool

	// dry run
	preview io.Writer
	staged  *bytes.Buffer

	// existing destination permissions, restored on the renamed file
	mode     fs.FileMode
	keepMode bool
}

// OpenWriter opens the destination for writing, truncating any existing
// content. In atomic mode the destination is left untouched until Commit.
// Both modes leave the file with the same permissions: an existing
// manifest keeps its mode, a new one gets 0666 less the umask.
func OpenWriter(path string, opts WriterOptions) (*Writer, error) {
	w := &Writer{path: path, atomic: opts.Atomic && !opts.DryRun}

	if opts.DryRun {
		w.preview = opts.Preview
		if w.preview == nil {
			w.preview = io.Discard
		}
		w.staged = &bytes.Buffer{}
		w.buf = bufio.NewWriter(w.staged)
		return w, nil
	}

	var (
		f   *os.File
		err error
	)
	if w.atomic {
		if info, statErr := os.Stat(path); statErr == nil && info.Mode().IsRegular() {
			w.mode = info.Mode().Perm()
			w.keepMode = true
		}
		f, err = createTemp(path)
		if err == nil {
			w.tmpPath = f.Name()
		}
	} else {
		f, err = os.Create(path)
	}
	if err != nil {
		return nil, domain.NewWriteError(path, "open", err)
	}

	w.file = f
	w.buf = bufio.NewWriter(f)
	return w, nil
}

// Written returns the number of bytes accepted so far
func (w *Writer) Written() int64 {
	return w.written
}

// WriteString appends s to the manifest
func (w *Writer) WriteString(s string) error {
	if w.done {
		return ErrWriterClosed
	}
	n, err := w.buf.WriteString(s)
	w.written += int64(n)
	if err != nil {
		return domain.NewWriteError(w.path, "write", err)
	}
	return nil
}

// Commit flushes and closes the manifest. In atomic mode the temporary
// file replaces the destination.
func (w *Writer) Commit() error {
	if w.done {
		return ErrWriterClosed
	}
	w.done = true

	if err := w.buf.Flush(); err != nil {
		w.discard()
		return domain.NewWriteError(w.path, "flush", err)
	}
	if w.staged != nil {
		if _, err := w.staged.WriteTo(w.preview); err != nil {
			return domain.NewWriteError(w.path, "preview", err)
		}
		return nil
	}

	if !w.atomic {
		if err := w.file.Close(); err != nil {
			return domain.NewWriteError(w.path, "close", err)
		}
		return nil
	}

	if w.keepMode {
		if err := w.file.Chmod(w.mode); err != nil {
			w.discard()
			return domain.NewWriteError(w.path, "chmod", err)
		}
	}
	if err := w.file.Sync(); err != nil {
		w.discard()
		return domain.NewWriteError(w.path, "sync", err)
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.tmpPath)
		return domain.NewWriteError(w.path, "close", err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		os.Remove(w.tmpPath)
		return domain.NewWriteError(w.path, "rename", err)
	}
	return nil
}

// Close releases the output after a failed or abandoned run. Whatever was
// written so far is flushed to the destination, except in atomic mode where
// the temporary file is removed and in dry-run mode where the staged
// manifest is dropped. Close after Commit is a no-op.
func (w *Writer) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	if w.staged != nil {
		w.staged.Reset()
		return nil
	}
	if w.atomic {
		w.discard()
		return nil
	}

	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return domain.NewWriteError(w.path, "flush", flushErr)
	}
	if closeErr != nil {
		return domain.NewWriteError(w.path, "close", closeErr)
	}
	return nil
}

func (w *Writer) discard() {
	if w.file == nil {
		return
	}
	w.file.Close()
	if w.tmpPath != "" {
		os.Remove(w.tmpPath)
	}
}

// createTemp creates a hidden temporary file next to path. Unlike
// os.CreateTemp it asks for 0666, so the umask applies as it does for
// os.Create.
func createTemp(path string) (*os.File, error) {
	dir, base := filepath.Split(path)
	for try := 0; ; try++ {
		name := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", base, rand.Uint32()))
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if errors.Is(err, fs.ErrExist) && try < 100 {
			continue
		}
		return f, err
	}
}
