package aios

import (
	"context"
	"strings"
)

// ACT controls power and volume through the vendor action-control service.
// It needs no setup and can be used on its own.
type ACT struct {
	soap *SOAPClient
	svc  Service
}

// NewACT creates an ACT client for the device at host.
func NewACT(httpClient Doer, host string, opts ...Option) *ACT {
	return newACT(NewSOAPClient(httpClient, host, opts...))
}

func newACT(soap *SOAPClient) *ACT {
	return &ACT{soap: soap, svc: mustService(ServiceACT)}
}

// Host returns the device host.
func (a *ACT) Host() string {
	return a.soap.Host()
}

// GetPowerState returns the current power state.
func (a *ACT) GetPowerState(ctx context.Context) (PowerState, error) {
	const action = "GetDevicePowerState"
	resp, err := a.soap.Call(ctx, a.svc, action)
	if err != nil {
		return "", err
	}
	doc, err := resp.Document()
	if err != nil {
		return "", err
	}
	el := doc.Find("", "devicePower")
	if el == nil {
		return "", missing(action, "devicePower")
	}
	return PowerState(strings.TrimSpace(el.Text)), nil
}

// SetPowerState turns the device on or off.
func (a *ACT) SetPowerState(ctx context.Context, state PowerState) error {
	return a.call(ctx, "SetDevicePowerState", Arg{Name: "devicePower", Value: string(state)})
}

// ChangeVolume nudges the volume one step up or down. There is no absolute
// volume on this service.
func (a *ACT) ChangeVolume(ctx context.Context, dir Direction) error {
	return a.call(ctx, "ChangeExternalDeviceVolume", Arg{Name: "change", Value: string(dir)})
}

// ToggleMute flips mute. The device exposes no mute query.
func (a *ACT) ToggleMute(ctx context.Context) error {
	return a.call(ctx, "ChangeExternalDeviceMute", Arg{Name: "change", Value: "TOGGLE"})
}

func (a *ACT) call(ctx context.Context, action string, args ...Arg) error {
	_, err := a.soap.Call(ctx, a.svc, action, args...)
	return err
}
