package errcode_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
	"github.com/stretchr/testify/assert"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		code gn.ErrorCode
		want errcode.Class
		str  string
	}{
		{errcode.UnknownError, errcode.UnknownClass, "UnknownError"},
		{errcode.CreateDirError, errcode.IOClass, "IOError"},
		{errcode.CreateLogFileError, errcode.IOClass, "IOError"},
		{errcode.ConfigGroupByEmptyError, errcode.ConfigurationClass, "ConfigurationError"},
		{errcode.ConfigPriorityMethodError, errcode.ConfigurationClass, "ConfigurationError"},
		{errcode.DataMalformedSequenceError, errcode.DataClass, "DataError"},
		{errcode.DataMalformedPriorityError, errcode.DataClass, "DataError"},
		{errcode.ResourceComparisonLimitError, errcode.ResourceClass, "ResourceError"},
		{errcode.ResourceCancelledError, errcode.ResourceClass, "ResourceError"},
		{errcode.CacheOpenError, errcode.IOClass, "IOError"},
		{errcode.CacheReadError, errcode.IOClass, "IOError"},
	}

	for _, v := range tests {
		res := errcode.ClassOf(v.code)
		assert.Equal(t, v.want, res, v.str)
		assert.Equal(t, v.str, res.String())
	}
}

func TestErrorClass(t *testing.T) {
	gnErr := &gn.Error{Code: errcode.DataEmptyReferenceError, Err: errors.New("empty")}
	assert.Equal(t, errcode.DataClass, errcode.ErrorClass(gnErr))

	wrapped := fmt.Errorf("scoring: %w", gnErr)
	assert.Equal(t, errcode.DataClass, errcode.ErrorClass(wrapped))

	assert.Equal(t, errcode.UnknownClass, errcode.ErrorClass(errors.New("plain")))
	assert.Equal(t, errcode.UnknownClass, errcode.ErrorClass(nil))
}
