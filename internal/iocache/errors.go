package iocache

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

func OpenError(dir string, err error) error {
	msg := `Cannot open priority cache at <em>%s</em>

<em>How to fix:</em>
  Make sure no other process uses the cache, or run with --no-cache`
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open cache %s: %w", fn.Name(), dir, err),
	}
}

func NotOpenError() error {
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  "Priority cache is not open",
		Err:  errors.New("cache database is not open"),
	}
}

func StoreError(key string, err error) error {
	msg := "Cannot store priorities in cache"
	return &gn.Error{
		Code: errcode.CacheStoreError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot store key %s: %w", key, err),
	}
}

func ReadError(key string, err error) error {
	msg := "Cannot read priorities from cache"
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot read key %s: %w", key, err),
	}
}
