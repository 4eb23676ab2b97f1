package ui

import "sync/atomic"

type Stats struct {
	TotalDocuments atomic.Int64
	TotalScrollers atomic.Int64
	TotalClones    atomic.Int64
	TotalBytes     atomic.Int64
}
