package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/facekit/facekit/internal/utils"
)

// DiscoverImageFiles expands the given paths (files or directories) into the
// list of supported image files, in walk order.
func DiscoverImageFiles(args []string, recursive bool) ([]string, error) {
	var imageFiles []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			files, err := discoverInDirectory(arg, recursive)
			if err != nil {
				return nil, err
			}
			imageFiles = append(imageFiles, files...)
		} else if utils.IsSupportedImage(arg) {
			imageFiles = append(imageFiles, arg)
		}
	}

	return imageFiles, nil
}

// discoverInDirectory finds supported image files in a directory.
func discoverInDirectory(dir string, recursive bool) ([]string, error) {
	var files []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if utils.IsSupportedImage(path) {
			files = append(files, path)
		}
		return nil
	}

	return files, filepath.Walk(dir, walkFn)
}
