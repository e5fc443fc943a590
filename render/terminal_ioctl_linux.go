//go:build linux

package render

import "golang.org/x/sys/unix"

const getTermios = unix.TCGETS
