//go:build unix

package fschecks

import (
	"fmt"
	"os"
	"syscall"
)

type OwnerError struct {
	err error
}
func (e *OwnerError) Error() string {
	return e.err.Error()
}
type ErrGetOwner struct { OwnerError }
type ErrOwner struct { OwnerError }
type ErrPerm struct { OwnerError }

// PrivOwnership verifies that file is safe to use as a private file:
// * it belongs to the current user
// * nobody but the owner can read or write it
func PrivOwnership(file string) error {
	uid := os.Getuid()
	fi, err := os.Stat(file)
	if err != nil {
		return err
	}

	// Get system dependent struct stat, see man stat(2)
	stat, err := sysStat(fi)
	if err != nil {
		return err
	}

	// Check ownership
	if uint32(uid) != stat.Uid {
		return &ErrOwner{OwnerError{fmt.Errorf(
			"UID of the user running the application is %d, but the UID of the owner of the file %q is %d - " +
			"refusing to use this file, it must belong to the application user",
			uid, file, stat.Uid)}}
	}

	// Check the file access mode
	if mode := fi.Mode().Perm(); mode & 0o066 != 0 {
		return &ErrPerm{OwnerError{fmt.Errorf(
			"file %q must NOT be read/write accessible by the group/all users, " +
			"only the application user may have access to it, current permission mode is: %o",
			file, mode)}}
	}

	// OK
	return nil
}

// Get system dependent struct stat, see man stat(2)
var sysStat = func(fi os.FileInfo) (*syscall.Stat_t, error) {
	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, &ErrGetOwner{OwnerError{fmt.Errorf(
				"fails to retrieve the UID of the owner of %q from %T structure," +
				" possible the platform is not supported", fi.Name(), fi)}}
	}

	return stat, nil
}
