package assetstore

import (
	"golang.org/x/sys/unix"

	"mediastore/internal/media"
)

// DiskUsage reports space on the filesystem backing the store's root.
type DiskUsage struct {
	TotalBytes uint64
	FreeBytes  uint64
	UsedBytes  uint64
}

// DiskUsage stats the filesystem holding the root directory. The numbers feed
// the operator-facing media management surface, not any engine decision.
func (s *Store) DiskUsage() (DiskUsage, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(s.root, &stat); err != nil {
		return DiskUsage{}, media.Wrap(media.ErrIO, "assetstore", "disk usage", s.root, err)
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return DiskUsage{
		TotalBytes: total,
		FreeBytes:  free,
		UsedBytes:  total - free,
	}, nil
}
