package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

// CreateDirError is returned when a config, cache, log or output directory
// cannot be created.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create directory <em>%s</em>

<em>How to fix:</em>
  Check permissions of the parent directory or choose another --output-dir`
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory %s: %w",
			fn, dir, err),
	}
}

// CopyFileError is returned when the default config.yaml cannot be placed
// into the config directory.
func CopyFileError(file string, err error) error {
	msg := `Cannot create default gnsubsample config <em>%s</em>

<em>How to fix:</em>
  Settings can be given by GNSUBSAMPLE_* environment variables instead`
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot copy config to %s: %w",
			fn, file, err),
	}
}

// ReadFileError is returned for sequence, metadata, priority and config
// files that cannot be opened or parsed.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
		Msg:  msg,
		Vars: vars,
	}
}

// WriteFileError is returned when a run output cannot be written.
func WriteFileError(path string, err error) error {
	msg := "Cannot write subsampling output <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
		Msg:  msg,
		Vars: vars,
	}
}

func DecompressError(path string, err error) error {
	msg := `Cannot decompress <em>%s</em>

<em>Supported formats:</em> plain text, gzip, bzip2, xz, zip`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Err:  fmt.Errorf("from %s: cannot decompress %s: %w", fn, path, err),
		Msg:  msg,
		Vars: vars,
	}
}
