package aios

import (
	"context"
	"sync"
)

// Device is a full AIOS receiver client: ACT for power and volume,
// AVTransport for playback, and the identity read at setup.
type Device struct {
	*ACT
	*AVTransport

	soap *SOAPClient

	mu       sync.RWMutex
	identity *DeviceIdentity
}

// NewDevice creates a client for the receiver at host. Call Setup before
// relying on Identity.
func NewDevice(httpClient Doer, host string, opts ...Option) *Device {
	soap := NewSOAPClient(httpClient, host, opts...)
	return &Device{
		ACT:         newACT(soap),
		AVTransport: newAVTransport(soap),
		soap:        soap,
	}
}

// Host returns the device host.
func (d *Device) Host() string {
	return d.soap.Host()
}

// Setup fetches the device description and stores the identity. It may be
// called again to refresh it.
func (d *Device) Setup(ctx context.Context) error {
	id, err := d.soap.FetchIdentity(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.identity = &id
	d.mu.Unlock()
	return nil
}

// Identity returns the identity read by Setup. ok is false before a
// successful Setup.
func (d *Device) Identity() (id DeviceIdentity, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.identity == nil {
		return DeviceIdentity{}, false
	}
	return *d.identity, true
}
