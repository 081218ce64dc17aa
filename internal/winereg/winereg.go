// Package winereg edits Wine registry files (user.reg, system.reg) in place.
//
// A registry file is a list of sections:
//
//	[Software\\Wine\\DllOverrides] 1700000000
//	#time=1da0b2c3d4e5f60
//	"winhttp"="native,builtin"
//
// Each section is a header line, a timestamp line, zero or more "key"="value"
// lines, and a terminating blank line. A section missing its blank line ends at
// the next header. Edits only ever touch the lines of the target section.
package winereg

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
)

const (
	// DllOverridesSection is the per-user DLL override section
	DllOverridesSection = `[Software\\Wine\\DllOverrides]`
	// WinHTTPKey is the DLL the mod loaders proxy through
	WinHTTPKey = "winhttp"
	// NativeBuiltin makes Wine prefer the native (mod loader) DLL
	NativeBuiltin = "native,builtin"
)

// ErrSectionNotFound is returned when the target section header does not exist
var ErrSectionNotFound = errors.New("registry section not found")

// Entry formats a "key"="value" line
func Entry(key, value string) string {
	return `"` + key + `"="` + value + `"`
}

// splitLines splits doc into lines without their terminators and returns the
// line ending to join them back with. CRLF files keep CRLF.
func splitLines(doc string) ([]string, string) {
	eol := "\n"
	if strings.Contains(doc, "\r\n") {
		eol = "\r\n"
	}
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, eol
}

// sectionBounds returns the body of section as the half-open line range [begin, end).
// The body ends at the first blank line, at the next section header, or at EOF.
func sectionBounds(lines []string, section string) (int, int, error) {
	begin := -1
	for i, line := range lines {
		if strings.HasPrefix(line, section) {
			begin = i + 1
			break
		}
	}
	if begin < 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrSectionNotFound, section)
	}
	if begin < len(lines) && strings.HasPrefix(lines[begin], "#time=") {
		begin++
	}

	end := len(lines)
	for i := begin; i < len(lines); i++ {
		if lines[i] == "" || strings.HasPrefix(lines[i], "[") {
			end = i
			break
		}
	}
	return begin, end, nil
}

// AddInSection makes sure key holds value inside section. An existing line for
// key is rewritten in place; a missing one is appended as the last entry of the
// section. The document is returned unchanged when key already holds value.
func AddInSection(doc, section, key, value string) (string, error) {
	lines, eol := splitLines(doc)
	begin, end, err := sectionBounds(lines, section)
	if err != nil {
		return doc, err
	}

	entry := Entry(key, value)
	prefix := `"` + key + `"=`
	for i := begin; i < end; i++ {
		if !strings.HasPrefix(lines[i], prefix) {
			continue
		}
		if lines[i] == entry {
			return doc, nil
		}
		lines[i] = entry
		return strings.Join(lines, eol), nil
	}

	lines = slices.Insert(lines, end, entry)
	return strings.Join(lines, eol), nil
}

// Lookup returns the raw value of key inside section, without surrounding quotes
func Lookup(doc, section, key string) (string, bool, error) {
	lines, _ := splitLines(doc)
	begin, end, err := sectionBounds(lines, section)
	if err != nil {
		return "", false, err
	}

	prefix := `"` + key + `"=`
	for i := begin; i < end; i++ {
		if strings.HasPrefix(lines[i], prefix) {
			return strings.Trim(strings.TrimPrefix(lines[i], prefix), `"`), true, nil
		}
	}
	return "", false, nil
}

// BackupPath returns the sibling path the original file is copied to before a write
func BackupPath(path string) string {
	return filepath.Join(filepath.Dir(path), filepath.Base(path)+".bak")
}

// Ensure applies AddInSection to the file at path. When the content changes the
// original is first copied to BackupPath(path) and then overwritten. When nothing
// changes no write happens at all. Filesystem errors are returned unwrapped.
func Ensure(fs fsys.FS, path, section, key, value string) (bool, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return false, err
	}

	original := string(data)
	patched, err := AddInSection(original, section, key, value)
	if err != nil {
		return false, fmt.Errorf("patching %s: %w", path, err)
	}
	if patched == original {
		return false, nil
	}

	if err := fs.CopyFile(path, BackupPath(path)); err != nil {
		return false, err
	}
	if err := fs.WriteFile(path, []byte(patched)); err != nil {
		return false, err
	}
	return true, nil
}
