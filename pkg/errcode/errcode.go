package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigGroupByEmptyError
	ConfigUnknownFieldError
	ConfigRegionTokenError
	ConfigMissingColumnError
	ConfigQuotaError
	ConfigPriorityMethodError

	// Data errors
	DataMalformedSequenceError
	DataDuplicateSequenceError
	DataMalformedMetadataError
	DataEmptyReferenceError
	DataUnequalLengthError
	DataMalformedPriorityError

	// Resource errors
	ResourceComparisonLimitError
	ResourceCancelledError

	// Cache errors
	CacheOpenError
	CacheStoreError
	CacheReadError
)

// Class groups error codes by how the failure should be understood
// by a user.
type Class int

const (
	UnknownClass Class = iota
	// ConfigurationClass covers invalid grouping keys, region tokens and
	// missing required metadata columns.
	ConfigurationClass
	// DataClass covers identifiers without metadata, malformed records and
	// empty reference sets.
	DataClass
	// ResourceClass covers excessive pairwise work and cancellation.
	ResourceClass
	// IOClass covers file system, log and cache failures.
	IOClass
)

func (c Class) String() string {
	switch c {
	case ConfigurationClass:
		return "ConfigurationError"
	case DataClass:
		return "DataError"
	case ResourceClass:
		return "ResourceError"
	case IOClass:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// ClassOf returns the class of a code.
func ClassOf(code gn.ErrorCode) Class {
	switch {
	case code >= ConfigGroupByEmptyError && code <= ConfigPriorityMethodError:
		return ConfigurationClass
	case code >= DataMalformedSequenceError && code <= DataMalformedPriorityError:
		return DataClass
	case code >= ResourceComparisonLimitError && code <= ResourceCancelledError:
		return ResourceClass
	case code >= CreateDirError && code <= CreateLogFileError,
		code >= CacheOpenError && code <= CacheReadError:
		return IOClass
	default:
		return UnknownClass
	}
}

// ErrorClass finds a *gn.Error in the chain of err and returns its class.
func ErrorClass(err error) Class {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return ClassOf(gnErr.Code)
	}
	return UnknownClass
}
