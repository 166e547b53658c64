package aios

import (
	"bytes"
	"context"
	"encoding/xml"

	"github.com/huin/goupnp"
)

const (
	descriptorAction  = "GetDeviceDescription"
	descriptorContext = "descriptor"
)

// FetchIdentity downloads the UPnP device description and returns the
// identity fields of its root device.
func (c *SOAPClient) FetchIdentity(ctx context.Context) (DeviceIdentity, error) {
	resp, err := c.get(ctx, DescriptorPath, descriptorAction)
	if err != nil {
		return DeviceIdentity{}, err
	}
	return parseDescriptor(resp.Body)
}

func parseDescriptor(body []byte) (DeviceIdentity, error) {
	var root goupnp.RootDevice
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.DefaultSpace = goupnp.DeviceXMLNamespace
	if err := dec.Decode(&root); err != nil {
		return DeviceIdentity{}, malformed(descriptorContext, err)
	}

	// goupnp leaves absent and empty fields alike as "", so presence is
	// checked on the element tree. An empty element is a valid value.
	doc, err := ParseDocument(body)
	if err != nil {
		return DeviceIdentity{}, malformed(descriptorContext, err)
	}
	dev := child(doc, "device")
	if dev == nil {
		return DeviceIdentity{}, missing(descriptorContext, "device")
	}
	for _, name := range []string{"serialNumber", "modelName", "manufacturer", "deviceType", "friendlyName"} {
		if child(dev, name) == nil {
			return DeviceIdentity{}, missing(descriptorContext, "device/"+name)
		}
	}

	d := root.Device
	return DeviceIdentity{
		SerialNumber: d.SerialNumber,
		ModelName:    d.ModelName,
		Manufacturer: d.Manufacturer,
		DeviceType:   d.DeviceType,
		FriendlyName: d.FriendlyName,
	}, nil
}

// child returns the first direct child of e named local in any namespace.
func child(e *Element, local string) *Element {
	for _, c := range e.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}
