package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// openStreams opens the input and output named by opts, falling back to the
// command's stdin and stdout. Both opens are attempted so every failure is
// reported. closeAll releases whatever was opened.
func openStreams(cmd *cobra.Command, opts *options) (io.Reader, io.Writer, func() error, error) {
	var (
		in      io.Reader = cmd.InOrStdin()
		out     io.Writer = cmd.OutOrStdout()
		closers []io.Closer
		errs    []error
	)

	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			errs = append(errs, fmt.Errorf("cannot open input file '%s' for reading: %w", opts.input, err))
		} else {
			log.Debugf("reading %s", opts.input)
			in = f
			closers = append(closers, f)
		}
	}

	if opts.output != "" {
		flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if opts.append {
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		}
		f, err := os.OpenFile(opts.output, flag, 0644)
		if err != nil {
			errs = append(errs, fmt.Errorf("cannot open output file '%s' for writing: %w", opts.output, err))
		} else {
			log.Debugf("writing %s (append=%v)", opts.output, opts.append)
			out = f
			closers = append(closers, f)
		}
	}

	closeAll := func() error {
		var cerrs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				cerrs = append(cerrs, err)
			}
		}
		return errors.Join(cerrs...)
	}

	if len(errs) > 0 {
		_ = closeAll()
		return nil, nil, nil, errors.Join(errs...)
	}
	return in, out, closeAll, nil
}
