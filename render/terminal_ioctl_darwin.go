//go:build darwin

package render

import "golang.org/x/sys/unix"

const getTermios = unix.TIOCGETA
