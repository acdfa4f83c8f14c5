package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies a failure the way callers report it to the user.
type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindAlreadyExists
	KindPermissionDenied
	KindInvalidArgument
	KindInvalidData
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindPermissionDenied:
		return "permission denied"
	case KindInvalidArgument:
		return "invalid argument"
	case KindInvalidData:
		return "invalid data"
	default:
		return "other error"
	}
}

var (
	// ErrInvalidArgument marks a request that can never succeed as given.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidData marks unreadable input, such as a non-UTF-8 text file
	// or a failed external command.
	ErrInvalidData = errors.New("invalid data")
)

// PathError records the operation and path that failed.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// KindOf classifies err. Wrapped errors are inspected with errors.Is. A
// path component that is not a directory counts as an invalid argument.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, syscall.ENOTDIR):
		return KindInvalidArgument
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrExist), errors.Is(err, syscall.ENOTEMPTY):
		return KindAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	default:
		return KindOther
	}
}
