package env

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// DefaultDevice is used when the machine ID is not available.
const DefaultDevice = "txtest"

// DeviceID derives a stable device name from the machine ID.
// The raw machine ID is never exposed.
func DeviceID() string {
	id, err := machineid.ProtectedID("txtest")
	if err != nil {
		glog.Warningf("machine id not available: %v", err)
		return DefaultDevice
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return "tx-" + id
}
