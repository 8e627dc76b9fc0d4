// Package iofs prepares directories and files used by gnsubsample.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/gnames/gnsys"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.PriorityCacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureOutputDir creates the output directory of a run.
func EnsureOutputDir(dir string) error {
	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// WriteFile writes data to a temporary file next to path and renames it,
// so readers never see a partially written output.
func WriteFile(path string, data []byte) error {
	var b Batch
	if err := b.Add(path, data); err != nil {
		return err
	}
	return b.Commit()
}

// Batch writes a set of files that appear together or not at all. Add
// stages data in temporary files, Commit renames them to their targets.
type Batch struct {
	staged []staged
}

type staged struct {
	path, tmp string
}

// Add stages data for path. On error every staged file is discarded.
func (b *Batch) Add(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gnsubsample-*")
	if err != nil {
		b.Discard()
		return WriteFileError(path, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0644)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		b.Discard()
		return WriteFileError(path, err)
	}
	b.staged = append(b.staged, staged{path: path, tmp: tmpName})
	return nil
}

// Commit moves staged files to their targets. If a rename fails, targets
// renamed by this commit and the remaining temporary files are removed.
func (b *Batch) Commit() error {
	for i, v := range b.staged {
		if err := os.Rename(v.tmp, v.path); err != nil {
			for _, done := range b.staged[:i] {
				_ = os.Remove(done.path)
			}
			b.staged = b.staged[i:]
			b.Discard()
			return WriteFileError(v.path, err)
		}
	}
	b.staged = nil
	return nil
}

// Discard removes staged files that were not committed.
func (b *Batch) Discard() {
	for _, v := range b.staged {
		_ = os.Remove(v.tmp)
	}
	b.staged = nil
}
