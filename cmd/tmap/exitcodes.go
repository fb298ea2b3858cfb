package main

import (
	"github.com/matsen/tweetmap/internal/dataset"
	"github.com/matsen/tweetmap/internal/source"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, delimiter, log level)
	ExitDataError   = 3 // Dataset could not be parsed
	ExitFetchError  = 4 // Dataset could not be fetched (non-2xx, network, missing file)
	ExitNotFound    = 5 // Requested node does not exist
)

// exitCodeFor maps a load error to its exit code.
func exitCodeFor(err error) int {
	switch {
	case dataset.IsParseError(err):
		return ExitDataError
	case source.IsFetchError(err):
		return ExitFetchError
	default:
		return ExitError
	}
}
