// =============================================================================
// Survey Tables - File Manager Utility
// =============================================================================
//
// This module writes the generated artifacts and reports a content hash for
// each of them, so a rendered table in the paper can be traced back to the
// exact run that produced it. It provides:
//   - Output directory management
//   - Artifact writing with SHA-256 content hashes
//   - The optional YAML run manifest
//
// =============================================================================

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ShortHashLength is the number of hex characters reported on the console.
const ShortHashLength = 12

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the output directory.
type FileManager struct {
	// OutputDir is the directory where artifacts are placed.
	OutputDir string
}

// NewFileManager creates a new FileManager for the given output directory.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{OutputDir: outputDir}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureOutputDir creates the output directory if it doesn't exist.
//
// RETURNS:
//   - An error if the directory cannot be created.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// =============================================================================
// ARTIFACT WRITING
// =============================================================================

// Artifact describes a written output file.
type Artifact struct {
	// Path is the full path of the written file.
	Path string `yaml:"-"`

	// File is the file name relative to the output directory.
	File string `yaml:"file"`

	// SHA256 is the full hex digest of the content.
	SHA256 string `yaml:"sha256"`

	// Bytes is the content length.
	Bytes int `yaml:"bytes"`
}

// ShortHash returns the first ShortHashLength hex characters of the digest.
func (a Artifact) ShortHash() string {
	return a.SHA256[:ShortHashLength]
}

// Digest returns the hex SHA-256 digest of the text.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ShortDigest returns the first ShortHashLength hex characters of the
// SHA-256 digest of the text.
func ShortDigest(text string) string {
	return Digest(text)[:ShortHashLength]
}

// WriteArtifact writes text verbatim to a file in the output directory,
// creating the directory if needed.
//
// PARAMETERS:
//   - name: The file name inside the output directory.
//   - text: The full content.
//
// RETURNS:
//   - The Artifact describing the written file.
//   - An error if writing fails.
func (fm *FileManager) WriteArtifact(name, text string) (Artifact, error) {
	if err := fm.EnsureOutputDir(); err != nil {
		return Artifact{}, err
	}

	path := filepath.Join(fm.OutputDir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return Artifact{}, fmt.Errorf("failed to write file: %w", err)
	}

	return Artifact{
		Path:   path,
		File:   name,
		SHA256: Digest(text),
		Bytes:  len(text),
	}, nil
}

// =============================================================================
// RUN MANIFEST
// =============================================================================

// Manifest records what a run read and wrote.
type Manifest struct {
	RunID       string           `yaml:"run_id"`
	GeneratedAt time.Time        `yaml:"generated_at"`
	Workbook    string           `yaml:"workbook"`
	Sheet       string           `yaml:"sheet"`
	Lookup      string           `yaml:"lookup,omitempty"`
	LookupKeys  int              `yaml:"lookup_keys"`
	Rows        int              `yaml:"rows"`
	Reports     []ManifestReport `yaml:"reports"`
}

// ManifestReport is one artifact entry in the manifest.
type ManifestReport struct {
	Name     string         `yaml:"name"`
	Artifact Artifact       `yaml:",inline"`
	Counts   map[string]int `yaml:"counts,omitempty"`
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.New().String()
}

// WriteManifest writes the manifest as YAML into the output directory.
//
// PARAMETERS:
//   - name: The manifest file name.
//   - manifest: The manifest content.
//
// RETURNS:
//   - The path to the manifest file.
//   - An error if encoding or writing fails.
func (fm *FileManager) WriteManifest(name string, manifest Manifest) (string, error) {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	artifact, err := fm.WriteArtifact(name, string(data))
	if err != nil {
		return "", err
	}
	return artifact.Path, nil
}
