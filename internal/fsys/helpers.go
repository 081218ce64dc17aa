package fsys

import "path/filepath"

// EnsureDirectory creates dir if it does not exist
func EnsureDirectory(fs FS, dir string) error {
	return fs.Mkdirs(dir)
}

// EmptyDirectory removes everything inside dir, leaving dir itself in place
func EmptyDirectory(fs FS, dir string) error {
	names, err := fs.Readdir(dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := fs.Lstat(path)
		if err != nil {
			return err
		}
		if info.IsDir {
			if err := EmptyDirectory(fs, path); err != nil {
				return err
			}
			if err := fs.Rmdir(path); err != nil {
				return err
			}
			continue
		}
		if err := fs.Unlink(path); err != nil {
			return err
		}
	}

	return nil
}
