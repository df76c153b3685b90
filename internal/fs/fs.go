// Package fs holds some utilities for manipulating the file system
package fs

import (
	"os"
	"os/user"
)

const defaultDirectoryPermission = 0740

// HomeFolder returns the home folder of the current user, or the empty
// string when it cannot be determined.
func HomeFolder() string {
	u, err := user.Current()
	if err != nil {
		home, _ := os.UserHomeDir()
		return home
	}
	return u.HomeDir
}

// CreateSecureFolder creates folder with owner only write permission when it
// does not exist yet.
func CreateSecureFolder(folder string) error {
	return os.MkdirAll(folder, defaultDirectoryPermission)
}

// Exists returns whether the given file or directory exists.
func Exists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return true, err
}

// CreateSecureFile creates or truncates file with read/write permission for
// the user only and returns the file handle.
func CreateSecureFile(file string) (*os.File, error) {
	fd, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}
	if err := fd.Chmod(0600); err != nil {
		fd.Close()
		return nil, err
	}
	return fd, nil
}
