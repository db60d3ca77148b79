//go:build deadlock
// +build deadlock

package syncutils

import "github.com/sasha-s/go-deadlock"

type RWMutex struct {
	deadlock.RWMutex
}
