package domain

import "errors"

// ErrNotFound is returned when a document cannot be read from the store.
var ErrNotFound = errors.New("document not found")

// ErrTargetNotFound is returned when an include reference matches no document.
var ErrTargetNotFound = errors.New("include target not found")

// ErrTargetIsContainer is returned when an include reference resolves to a folder.
var ErrTargetIsContainer = errors.New("include target is a folder, not a file")

// ErrDepthLimitExceeded is returned when an include would open more than DepthLimit nested inclusions.
var ErrDepthLimitExceeded = errors.New("reached inclusion depth limit (max = 10)")

// ErrUnsupportedEnvironment is returned when the host does not expose filesystem paths.
var ErrUnsupportedEnvironment = errors.New("filesystem paths are not supported in this environment")

// ErrInvalidAdapter is returned when the document store is not backed by a filesystem.
var ErrInvalidAdapter = errors.New("document store is not a filesystem adapter")

// ErrNoActiveView is returned when a selection is requested while no editing surface is focused.
var ErrNoActiveView = errors.New("no active view")
