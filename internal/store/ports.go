// Package store declares the persistence port for the state document.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store closed")

// Ports for outbound persistence adapters. Every operation replaces or reads
// the whole document atomically.
type (
	DocumentReader interface {
		// Load returns the raw document. found is false when nothing has been
		// saved under the store's key yet.
		Load(ctx context.Context) (raw []byte, found bool, err error)
	}

	DocumentWriter interface {
		Save(ctx context.Context, raw []byte) error
	}

	DocumentEraser interface {
		Clear(ctx context.Context) error
	}

	StateStore interface {
		DocumentReader
		DocumentWriter
		DocumentEraser
	}

	// DocumentInspector is implemented by stores that can describe the saved
	// document without reading it.
	DocumentInspector interface {
		Info(ctx context.Context) (info DocumentInfo, found bool, err error)
	}
)

// DocumentInfo describes a saved document. Revision and SchemaVersion are
// zero for stores that do not track them.
type DocumentInfo struct {
	Key           string
	Revision      int64
	Size          int
	UpdatedAt     time.Time
	SchemaVersion uint
}
