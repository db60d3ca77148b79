//go:build !deadlock
// +build !deadlock

package syncutils

import "sync"

type RWMutex struct {
	sync.RWMutex
}
