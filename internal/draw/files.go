package draw

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
)

// removeSource deletes the original after a cross-device copy; tests
// replace it.
var removeSource = os.Remove

// Extensions is the allow-list of image extensions, lowercased.
var Extensions = []string{".jpg", ".png"}

// IsImage reports whether name carries an allow-listed extension.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// listImages returns the allow-listed regular files directly inside dir,
// sorted by name. A missing directory is empty.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}
		if !IsImage(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ListCandidates returns every eligible image directly inside sourceDir.
// Subdirectories and other files are ignored. A missing directory yields an
// empty slice.
func ListCandidates(sourceDir string) ([]string, error) {
	return listImages(sourceDir)
}

// WinnerDir is the archive directory for category.
func WinnerDir(winnersRoot, category string) string {
	return filepath.Join(winnersRoot, category)
}

// CountWinners counts the images already archived for category. A missing
// category directory counts as zero.
func CountWinners(winnersRoot, category string) (int, error) {
	files, err := listImages(WinnerDir(winnersRoot, category))
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// RecordWinner moves path into winnersRoot/category, creating missing
// directories and replacing a same-named file already there.
func RecordWinner(path, category, winnersRoot string) (string, error) {
	dest := filepath.Join(WinnerDir(winnersRoot, category), filepath.Base(path))

	fail := func(err error) (string, error) {
		return "", &RelocationError{Category: category, Source: path, Destination: dest, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(err)
	}
	if !info.Mode().IsRegular() {
		return fail(errors.New("not a regular file"))
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fail(err)
	}

	if err := os.Rename(path, dest); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return fail(err)
		}
		if err := copyThenRemove(path, dest, info.Mode().Perm()); err != nil {
			return fail(err)
		}
	}
	return dest, nil
}

// copyThenRemove moves a file across filesystems. The copy goes to a
// temporary name first so a half-written file never appears under dest.
func copyThenRemove(src, dest string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".luckydraw-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	// Set aside a same-named winner so a failed move can put it back.
	backup := ""
	if _, err := os.Lstat(dest); err == nil {
		backup = dest + ".luckydraw-prev"
		if err := os.Rename(dest, backup); err != nil {
			os.Remove(tmpName)
			return err
		}
	}
	restore := func() {
		if backup != "" {
			os.Rename(backup, dest)
		} else {
			os.Remove(dest)
		}
	}

	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		restore()
		return err
	}

	in.Close()
	if err := removeSource(src); err != nil {
		// The file must live in exactly one pool.
		restore()
		return err
	}
	if backup != "" {
		os.Remove(backup)
	}
	return nil
}
