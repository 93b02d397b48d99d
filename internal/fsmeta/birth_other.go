//go:build !linux

package fsmeta

import (
	"os"
	"time"
)

// BirthTime returns the modification time from info on platforms without statx.
func BirthTime(path string, info os.FileInfo) time.Time {
	return info.ModTime()
}
