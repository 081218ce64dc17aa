// Package fsys is the filesystem capability used by the launcher. It exposes the
// small set of operations the launch and watcher code need on top of an afero.Fs,
// so production code runs against the real filesystem and tests against memory.
package fsys

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

// Error is returned by every FS operation that fails
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

// FileInfo is the subset of stat information callers rely on
type FileInfo struct {
	IsDir   bool
	ModTime time.Time
	Size    int64
}

// FS is the filesystem capability contract
type FS interface {
	Exists(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	CopyFile(src, dst string) error
	CopyFolder(src, dst string) error
	Mkdirs(path string) error
	Readdir(path string) ([]string, error)
	Lstat(path string) (FileInfo, error)
	Stat(path string) (FileInfo, error)
	Unlink(path string) error
	Rmdir(path string) error
	SetModifiedTime(path string, t time.Time) error
}

// AferoFS implements FS on top of an afero filesystem
type AferoFS struct {
	fs afero.Fs
}

// Compile-time interface implementation check.
var _ FS = (*AferoFS)(nil)

// New wraps an afero filesystem
func New(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

// NewOS returns an FS backed by the real filesystem
func NewOS() *AferoFS {
	return New(afero.NewOsFs())
}

// NewMemory returns an empty in-memory FS
func NewMemory() *AferoFS {
	return New(afero.NewMemMapFs())
}

// Afero returns the underlying afero filesystem
func (a *AferoFS) Afero() afero.Fs {
	return a.fs
}

// Exists reports whether path exists
func (a *AferoFS) Exists(path string) (bool, error) {
	ok, err := afero.Exists(a.fs, path)
	return ok, wrap("exists", path, err)
}

// ReadFile returns the content of the file at path
func (a *AferoFS) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(a.fs, path)
	return data, wrap("read", path, err)
}

// WriteFile replaces the content of the file at path
func (a *AferoFS) WriteFile(path string, data []byte) error {
	return wrap("write", path, afero.WriteFile(a.fs, path, data, 0644))
}

// CopyFile copies src to dst, preserving the source permissions
func (a *AferoFS) CopyFile(src, dst string) error {
	in, err := a.fs.Open(src)
	if err != nil {
		return wrap("copy", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return wrap("copy", src, err)
	}

	out, err := a.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return wrap("copy", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return wrap("copy", dst, err)
	}

	return wrap("copy", dst, out.Close())
}

// CopyFolder recursively copies the directory src to dst
func (a *AferoFS) CopyFolder(src, dst string) error {
	err := afero.Walk(a.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return a.fs.MkdirAll(target, 0755)
		}
		return a.CopyFile(path, target)
	})
	return wrap("copy folder", src, unwrapOwn(err))
}

// Mkdirs creates path and any missing parents
func (a *AferoFS) Mkdirs(path string) error {
	return wrap("mkdirs", path, a.fs.MkdirAll(path, 0755))
}

// Readdir returns the sorted entry names of a directory
func (a *AferoFS) Readdir(path string) ([]string, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, wrap("readdir", path, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, wrap("readdir", path, err)
	}
	sort.Strings(names)
	return names, nil
}

// Lstat describes path without following a final symlink when the backend supports it
func (a *AferoFS) Lstat(path string) (FileInfo, error) {
	var (
		info os.FileInfo
		err  error
	)
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err = l.LstatIfPossible(path)
	} else {
		info, err = a.fs.Stat(path)
	}
	if err != nil {
		return FileInfo{}, wrap("lstat", path, err)
	}
	return toFileInfo(info), nil
}

// Stat describes path
func (a *AferoFS) Stat(path string) (FileInfo, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return FileInfo{}, wrap("stat", path, err)
	}
	return toFileInfo(info), nil
}

// Unlink removes a file
func (a *AferoFS) Unlink(path string) error {
	info, err := a.fs.Stat(path)
	if err != nil {
		return wrap("unlink", path, err)
	}
	if info.IsDir() {
		return wrap("unlink", path, fmt.Errorf("is a directory"))
	}
	return wrap("unlink", path, a.fs.Remove(path))
}

// Rmdir removes an empty directory
func (a *AferoFS) Rmdir(path string) error {
	names, err := a.Readdir(path)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return wrap("rmdir", path, fmt.Errorf("directory not empty"))
	}
	return wrap("rmdir", path, a.fs.Remove(path))
}

// SetModifiedTime sets both access and modification time of path to t
func (a *AferoFS) SetModifiedTime(path string, t time.Time) error {
	return wrap("chtimes", path, a.fs.Chtimes(path, t, t))
}

func toFileInfo(info os.FileInfo) FileInfo {
	return FileInfo{
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}
}

// unwrapOwn strips an *Error produced by a nested call so it is not wrapped twice
func unwrapOwn(err error) error {
	if e, ok := err.(*Error); ok {
		return e.Err
	}
	return err
}
