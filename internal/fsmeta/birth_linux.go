//go:build linux

package fsmeta

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// BirthTime returns the creation time of the file at path. Filesystems that
// do not record it fall back to the modification time from info.
func BirthTime(path string, info os.FileInfo) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err == nil && stx.Mask&unix.STATX_BTIME != 0 && stx.Btime.Sec != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return info.ModTime()
}
