package cart

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no cartridge image.
var ErrEmptyArchive = errors.New("archive contains no files")

// Extensions lists the file extensions LoadFile understands.
var Extensions = []string{".gb", ".gbc", ".gz", ".zip", ".7z"}

// IsCartridgeFile reports whether name carries one of Extensions.
func IsCartridgeFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadFile reads a cartridge image from disk, decompressing it when the
// extension names an archive. Archives yield their first .gb/.gbc entry,
// or their first entry when none matches.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	rom, err := Decode(filepath.Ext(filename), data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(filename), err)
	}
	return rom, nil
}

// Decode unpacks data according to the file extension ext.
// Unknown extensions return data unchanged.
func Decode(ext string, data []byte) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)

	case ".zip":
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		var files []*zip.File
		for _, f := range zr.File {
			if !f.FileInfo().IsDir() {
				files = append(files, f)
			}
		}
		if len(files) == 0 {
			return nil, ErrEmptyArchive
		}
		f := files[pickEntry(len(files), func(i int) string { return files[i].Name })]
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)

	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		var files []*sevenzip.File
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				files = append(files, f)
			}
		}
		if len(files) == 0 {
			return nil, ErrEmptyArchive
		}
		f := files[pickEntry(len(files), func(i int) string { return files[i].Name })]
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)

	default:
		return data, nil
	}
}

func pickEntry(n int, name func(int) string) int {
	for i := 0; i < n; i++ {
		switch strings.ToLower(filepath.Ext(name(i))) {
		case ".gb", ".gbc":
			return i
		}
	}
	return 0
}
