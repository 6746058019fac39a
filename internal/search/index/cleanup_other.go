//go:build !windows

package index

import (
	"errors"
	"os"
)

// cleanupBackup removes the backup directory left by AtomicSwap.
func cleanupBackup(backupDir string) error {
	if backupDir == "" {
		return nil
	}
	err := os.RemoveAll(backupDir)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
