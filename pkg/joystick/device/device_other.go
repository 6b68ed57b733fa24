//go:build !linux
// +build !linux

package device

import "errors"

// ErrNotSupported indicates joysticks are not supported on the platform.
var ErrNotSupported = errors.New("joystick not supported")

// Open opens the device with specified index.
func Open(index int) (Device, error) {
	return nil, ErrNotSupported
}

// DetectAndOpen detects a next available device from startIndex and opens it.
func DetectAndOpen(startIndex int) (Device, error) {
	return nil, ErrNotSupported
}
