package fsys

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsAndMkdirs(t *testing.T) {
	mem := NewMemory()

	before, err := mem.Exists("Test")
	require.NoError(t, err)
	require.NoError(t, mem.Mkdirs("Test"))
	after, err := mem.Exists("Test")
	require.NoError(t, err)

	assert.False(t, before)
	assert.True(t, after)
}

func TestWriteFileAndReadFile(t *testing.T) {
	mem := NewMemory()
	path := filepath.Join("Test", "TestWriteFile")
	require.NoError(t, mem.Mkdirs("Test"))

	before, _ := mem.Exists(path)
	require.NoError(t, mem.WriteFile(path, []byte("test_content")))
	after, _ := mem.Exists(path)
	content, err := mem.ReadFile(path)
	require.NoError(t, err)

	assert.False(t, before)
	assert.True(t, after)
	assert.Equal(t, "test_content", string(content))
}

func TestCopyFile(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Mkdirs("Test_Pre"))
	require.NoError(t, mem.Mkdirs("Test_Post"))
	require.NoError(t, mem.WriteFile(filepath.Join("Test_Pre", "TestWriteFile"), []byte("test_content")))

	require.NoError(t, mem.CopyFile(filepath.Join("Test_Pre", "TestWriteFile"), filepath.Join("Test_Post", "TestWriteFileCopied")))

	content, err := mem.ReadFile(filepath.Join("Test_Post", "TestWriteFileCopied"))
	require.NoError(t, err)
	assert.Equal(t, "test_content", string(content))
}

func TestCopyFolder(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Mkdirs(filepath.Join("Test", "Pre", "Nested")))
	require.NoError(t, mem.WriteFile(filepath.Join("Test", "Pre", "TestWriteFile"), []byte("test_content")))
	require.NoError(t, mem.WriteFile(filepath.Join("Test", "Pre", "Nested", "Deep"), []byte("deep")))

	require.NoError(t, mem.CopyFolder(filepath.Join("Test", "Pre"), filepath.Join("Test", "Post")))

	content, err := mem.ReadFile(filepath.Join("Test", "Post", "TestWriteFile"))
	require.NoError(t, err)
	assert.Equal(t, "test_content", string(content))

	content, err = mem.ReadFile(filepath.Join("Test", "Post", "Nested", "Deep"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(content))
}

func TestSetModifiedTime(t *testing.T) {
	mem := NewMemory()
	path := filepath.Join("Test", "TestFile")
	require.NoError(t, mem.Mkdirs(filepath.Dir(path)))
	require.NoError(t, mem.WriteFile(path, []byte("test_content")))

	original, err := mem.Stat(path)
	require.NoError(t, err)

	fake := time.Date(2021, time.March, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, mem.SetModifiedTime(path, fake))

	updated, err := mem.Stat(path)
	require.NoError(t, err)
	assert.True(t, original.ModTime.After(updated.ModTime))
	assert.True(t, updated.ModTime.Equal(fake))
}

func TestFileSize(t *testing.T) {
	mem := NewMemory()
	path := filepath.Join("Test", "TestFile")
	require.NoError(t, mem.Mkdirs(filepath.Dir(path)))
	require.NoError(t, mem.WriteFile(path, []byte("test_content")))

	info, err := mem.Lstat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("test_content")), info.Size)
	assert.False(t, info.IsDir)
}

func TestReaddir_Sorted(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Mkdirs("dir/b"))
	require.NoError(t, mem.WriteFile("dir/c.txt", nil))
	require.NoError(t, mem.WriteFile("dir/a.txt", nil))

	names, err := mem.Readdir("dir")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b", "c.txt"}, names)
}

func TestUnlinkAndRmdir(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Mkdirs("dir"))
	require.NoError(t, mem.WriteFile("dir/file", []byte("x")))

	assert.Error(t, mem.Unlink("dir"), "unlink must refuse directories")
	assert.Error(t, mem.Rmdir("dir"), "rmdir must refuse non-empty directories")

	require.NoError(t, mem.Unlink("dir/file"))
	require.NoError(t, mem.Rmdir("dir"))

	exists, err := mem.Exists("dir")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReadFile_NotFoundIsFilesystemError(t *testing.T) {
	mem := NewMemory()

	_, err := mem.ReadFile("/missing/user.reg")
	require.Error(t, err)

	var fsErr *Error
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, "read", fsErr.Op)
	assert.Equal(t, "/missing/user.reg", fsErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestEmptyDirectory(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, EnsureDirectory(mem, "/profile/BepInEx/plugins"))
	require.NoError(t, mem.WriteFile("/profile/BepInEx/LogOutput.log", []byte("log")))
	require.NoError(t, mem.WriteFile("/profile/BepInEx/plugins/mod.dll", []byte("dll")))
	require.NoError(t, mem.WriteFile("/profile/doorstop_config.ini", []byte("ini")))

	require.NoError(t, EmptyDirectory(mem, "/profile"))

	names, err := mem.Readdir("/profile")
	require.NoError(t, err)
	assert.Empty(t, names)

	exists, err := mem.Exists("/profile")
	require.NoError(t, err)
	assert.True(t, exists, "the directory itself is kept")
}
