//go:build windows

package filesystem

import "os"

// renameio does not support Windows; fall back to a plain truncating write.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
