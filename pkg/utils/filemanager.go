// =============================================================================
// POS to IIF Converter - File Manager Utility
// =============================================================================
//
// This module provides file management for the batch convert command:
//   - Discovery of POS export files in the input directory
//   - Archival of inputs after successful conversion
//   - Error log generation for failed files
//   - Directory management
//
// Failed inputs stay where they are so the operator can fix and re-run them;
// only successfully converted files are archived.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// inputExtensions are the export formats the converter accepts.
var inputExtensions = map[string]bool{
	".xlsx": true,
	".csv":  true,
}

// FileManager handles file operations for the batch converter.
type FileManager struct {
	// InputDir is the directory scanned for export files.
	InputDir string

	// OutputDir is the directory where IIF files are written.
	OutputDir string

	// ArchiveDir is the directory processed inputs are moved into.
	ArchiveDir string
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.ArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DiscoverInputFiles scans the input directory for export files, recursively.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	var files []string

	err := filepath.Walk(fm.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if inputExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	return files, nil
}

// ArchiveInput moves a processed input file into the archive directory. If a
// file with the same name already exists there, a unique suffix is added
// rather than overwriting the earlier archive.
func (fm *FileManager) ArchiveInput(path string) error {
	target := filepath.Join(fm.ArchiveDir, filepath.Base(path))

	if _, err := os.Stat(target); err == nil {
		ext := filepath.Ext(target)
		base := strings.TrimSuffix(filepath.Base(path), ext)
		target = filepath.Join(fm.ArchiveDir, fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext))
	}

	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return nil
}

// WriteErrorLog writes the collected failure messages to a timestamped log in
// the output directory and returns its path.
func (fm *FileManager) WriteErrorLog(errors []string) (string, error) {
	name := fmt.Sprintf("errors_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(fm.OutputDir, name)

	content := strings.Join(errors, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}
	return path, nil
}
