package cmd

import (
	"fmt"
)

// usageError marks a command line mistake. Usage is printed after it.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// fileFlag is a file name flag that may be given only once. Flags sharing
// a path share that limit, so -o and -a exclude each other.
type fileFlag struct {
	path       *string
	appendMode *bool
	what       string
}

func (f *fileFlag) String() string {
	if f.path == nil {
		return ""
	}
	return *f.path
}

func (f *fileFlag) Set(value string) error {
	if *f.path != "" {
		return fmt.Errorf("only one %s file allowed", f.what)
	}
	if value == "" {
		return fmt.Errorf("%s file name required", f.what)
	}
	*f.path = value
	if f.appendMode != nil {
		*f.appendMode = true
	}
	return nil
}

func (f *fileFlag) Type() string { return "file" }

// normalizeArgs rewrites -? to -h up to the first "--".
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, arg := range out {
		if arg == "--" {
			break
		}
		if arg == "-?" {
			out[i] = "-h"
		}
	}
	return out
}
