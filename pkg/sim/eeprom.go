package sim

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/glog"
	homedir "github.com/mitchellh/go-homedir"
)

// EEPROMSize is the size of the EEPROM image.
const EEPROMSize = 1024

// DefaultEEPROMPath is the image used unless configured.
const DefaultEEPROMPath = "~/.txtest/eeprom.bin"

// EEPROM implements hal.Storage backed by an image file. A missing
// image reads as all zeros. Every store is written through.
type EEPROM struct {
	Path string

	lock sync.Mutex
	data [EEPROMSize]byte
}

// OpenEEPROM loads the image from path, which may start with ~.
func OpenEEPROM(path string) (*EEPROM, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	e := &EEPROM{Path: expanded}
	data, err := ioutil.ReadFile(expanded)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if len(data) > EEPROMSize {
		return nil, fmt.Errorf("eeprom image %s too large: %d bytes", expanded, len(data))
	}
	copy(e.data[:], data)
	return e, nil
}

// LoadByte implements hal.Storage.
func (e *EEPROM) LoadByte(offset uint16) byte {
	if int(offset) >= EEPROMSize {
		return 0
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.data[offset]
}

// StoreByte implements hal.Storage.
func (e *EEPROM) StoreByte(offset uint16, value byte) {
	if int(offset) >= EEPROMSize {
		glog.Errorf("eeprom store out of range: %d", offset)
		return
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.data[offset] == value {
		return
	}
	e.data[offset] = value
	if err := e.flush(); err != nil {
		glog.Errorf("eeprom write %s error: %v", e.Path, err)
	}
}

func (e *EEPROM) flush() error {
	if e.Path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(e.Path), 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(e.Path, e.data[:], 0644)
}
