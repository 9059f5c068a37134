package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input root.
	RelPath string
	// Key is the asset key (relpath without extension).
	Key string
	// Format is the source format (png, jpeg, webp, gif, bmp, tiff).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// ScanImages returns all image sources under input.  A single image file
// is accepted too and yields one source keyed by its base name.
func ScanImages(input string) ([]Source, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		src, ok := sourceFor(filepath.Dir(input), input, info.Size())
		if !ok {
			return nil, fmt.Errorf("%s is not a recognized image file", input)
		}
		return []Source{src}, nil
	}

	var sources []Source
	err = filepath.Walk(input, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if src, ok := sourceFor(input, path, info.Size()); ok {
			sources = append(sources, src)
		}
		return nil
	})

	return sources, err
}

func sourceFor(root, path string, size int64) (Source, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return Source{}, false
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return Source{}, false
	}

	// Key: relative path without extension, using forward slashes.
	key := strings.TrimSuffix(relPath, ext)
	key = filepath.ToSlash(key)

	// Normalize format name.
	format := strings.TrimPrefix(ext, ".")
	if format == "jpg" {
		format = "jpeg"
	}
	if format == "tif" {
		format = "tiff"
	}

	return Source{
		AbsPath: path,
		RelPath: filepath.ToSlash(relPath),
		Key:     key,
		Format:  format,
		Size:    size,
	}, true
}
