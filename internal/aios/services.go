package aios

const (
	// DefaultPort is the TCP port both control services and the device
	// description are served on.
	DefaultPort = 60006

	// DescriptorPath is the UPnP device description document.
	DescriptorPath = "/upnp/desc/aios_device/aios_device.xml"

	// SOAP envelope namespace
	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

	// Namespaces used inside GetCurrentState replies
	avtNS  = "urn:schemas-upnp-org:metadata-1-0/AVT/"
	didlNS = "urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/"
	dcNS   = "http://purl.org/dc/elements/1.1/"
	upnpNS = "urn:schemas-upnp-org:metadata-1-0/upnp/"
)

// ServiceName identifies a control service exposed by the device.
type ServiceName string

const (
	ServiceACT         ServiceName = "ACT"
	ServiceAVTransport ServiceName = "AVTransport"
)

// Service is the control endpoint and action namespace of a service.
type Service struct {
	Name      ServiceName
	Path      string
	Namespace string
}

var services = map[ServiceName]Service{
	ServiceACT: {
		Name:      ServiceACT,
		Path:      "/ACT/control",
		Namespace: "urn:schemas-denon-com:service:ACT:1",
	},
	ServiceAVTransport: {
		Name:      ServiceAVTransport,
		Path:      "/upnp/control/renderer_dvc/AVTransport",
		Namespace: "urn:schemas-upnp-org:service:AVTransport:1",
	},
}

// LookupService returns the endpoint for a logical service name.
func LookupService(name ServiceName) (Service, bool) {
	s, ok := services[name]
	return s, ok
}

func mustService(name ServiceName) Service {
	s, ok := services[name]
	if !ok {
		panic("aios: unknown service " + string(name))
	}
	return s
}
