//go:build linux
// +build linux

package device

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"syscall"
	"unsafe"
)

// PathFormat is the path of a joystick device, formatted with its index.
var PathFormat = "/dev/input/js%d"

type device struct {
	file      *os.File
	index     int
	name      string
	axisCount uint8
	buf       [EventSize]byte
}

// Open opens the device with specified index.
func Open(index int) (Device, error) {
	f, err := os.OpenFile(fmt.Sprintf(PathFormat, index), os.O_RDONLY, 0666)
	if err != nil {
		return nil, err
	}
	d := &device{file: f, index: index}

	errno := d.ioctl(iocGAXES, unsafe.Pointer(&d.axisCount))
	if errno == 0 {
		var buf [256]byte
		if errno = d.ioctl(iocGNAME, unsafe.Pointer(&buf)); errno == 0 {
			d.name = string(bytes.TrimRight(buf[:], "\x00"))
		}
	}
	if errno != 0 {
		d.file.Close()
		return nil, errno
	}
	return d, nil
}

// DetectAndOpen opens the first available device from startIndex.
// It returns nil Device if none is found.
func DetectAndOpen(startIndex int) (Device, error) {
	for index := startIndex; index < 32; index++ {
		d, err := Open(index)
		if os.IsNotExist(err) {
			continue
		}
		return d, err
	}
	return nil, nil
}

// Close implements Device.
func (d *device) Close() error {
	return d.file.Close()
}

// Index implements Device.
func (d *device) Index() int {
	return d.index
}

// Name implements Device.
func (d *device) Name() string {
	return d.name
}

// AxisCount implements Device.
func (d *device) AxisCount() int {
	return int(d.axisCount)
}

// ReadEvent implements Device.
func (d *device) ReadEvent() (Event, error) {
	if _, err := io.ReadFull(d.file, d.buf[:]); err != nil {
		return nil, err
	}
	return DecodeEvent(d.buf[:])
}

const (
	iocGAXES uint = 0x80016a11
	iocGNAME uint = 0x80ff6a13
)

func (d *device) ioctl(req uint, ptr unsafe.Pointer) syscall.Errno {
	_, _, err := syscall.Syscall(syscall.SYS_IOCTL, uintptr(d.file.Fd()), uintptr(req), uintptr(ptr))
	return err
}
