/*
Package gemconv is a library for batch converting directories of PC-98 GEM
images into standard image formats, PNG by default.
*/
package gemconv

import (
	"errors"
	"fmt"
	"io"
	"log"
)

// Converter converts every GEM file found in a directory.
type Converter struct {
	logger    *log.Logger
	format    OutputFormat
	workers   int
	keepGoing bool
}

// Format sets the output format by name, see Formats.
func Format(name string) func(*Converter) error {
	return func(c *Converter) error {
		f, err := Lookup(name)
		if err != nil {
			return err
		}
		c.format = f
		return nil
	}
}

// Workers sets how many files are converted concurrently. The default of one
// converts files sequentially in directory order.
func Workers(n int) func(*Converter) error {
	return func(c *Converter) error {
		if n < 1 {
			return errors.New("number of workers must be at least one")
		}
		c.workers = n
		return nil
	}
}

// KeepGoing makes a failed file not stop the rest of the batch. Failures are
// logged and summarised in a *BatchError once every file has been tried.
func KeepGoing() func(*Converter) error {
	return func(c *Converter) error {
		c.keepGoing = true
		return nil
	}
}

// New returns a Converter that reports each converted file to logger. A nil
// logger discards the reports.
func New(logger *log.Logger, options ...func(*Converter) error) (*Converter, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	c := &Converter{
		logger:  logger,
		format:  formats[DefaultFormat],
		workers: 1,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// BatchError is returned by Convert in keep-going mode when at least one
// file failed.
type BatchError struct {
	Failed int
	Total  int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("failed to convert %d of %d files", e.Failed, e.Total)
}
