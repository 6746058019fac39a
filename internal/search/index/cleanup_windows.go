//go:build windows

package index

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// cleanupBackup removes the backup directory left by AtomicSwap.
//
// On Windows, antivirus/indexers can briefly hold handles on freshly renamed
// files; we retry for a short period and fall back to scheduling deletion of
// the directory at next reboot.
func cleanupBackup(backupDir string) error {
	if backupDir == "" {
		return nil
	}

	tryRemove := func() error {
		err := os.RemoveAll(backupDir)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var lastErr error
	for i := 0; i < 15; i++ {
		if err := tryRemove(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(200 * time.Millisecond)
	}

	p, err := windows.UTF16PtrFromString(backupDir)
	if err != nil {
		return lastErr
	}
	if err := windows.MoveFileEx(p, nil, windows.MOVEFILE_DELAY_UNTIL_REBOOT); err != nil {
		return lastErr
	}
	return nil
}
