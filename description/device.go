package description

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/andaru/scpdgen/generr"
	"github.com/andaru/scpdgen/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Root is a device description document
type Root struct {
	XMLName       xml.Name
	SpecVersion   SpecVersion
	SystemVersion SystemVersion
	Device        Device
}

// SpecVersion is the UPnP architecture version a document adheres to
type SpecVersion struct {
	Major int
	Minor int
}

// SystemVersion is the firmware version block AVM devices add to
// their device description. All fields are zero when absent.
type SystemVersion struct {
	HW          int
	Major       int
	Minor       int
	Patch       int
	Buildnumber int
	Display     string
}

// Device is a (possibly nested) device of a device description
type Device struct {
	DeviceType       string
	FriendlyName     string
	Manufacturer     string
	ManufacturerURL  string
	ModelDescription string
	ModelName        string
	ModelNumber      string
	ModelURL         string
	UDN              string
	UPC              string
	PresentationURL  string
	Icons            []Icon
	Services         []Service
	Devices          []Device
}

// Icon is a device icon
type Icon struct {
	Mimetype string
	Width    int
	Height   int
	Depth    int
	URL      string
}

// Service is a service entry of a device
type Service struct {
	ServiceType string
	ServiceID   string
	ControlURL  string
	EventSubURL string
	SCPDURL     string
}

// Token returns the service type token, the fourth colon separated
// field of the service type URN, e.g. "WANIPConnection" for
// "urn:schemas-upnp-org:service:WANIPConnection:1".
func (s Service) Token() (string, error) {
	fields := strings.Split(s.ServiceType, ":")
	if len(fields) < 4 || fields[3] == "" {
		return "", errors.WithStack(generr.Malformed("serviceType",
			generr.WithService(s.ServiceType),
			generr.WithMessage("service type is not a service URN")))
	}
	return fields[3], nil
}

func (s Service) String() string { return s.ServiceType + " (" + s.ServiceID + ")" }

// ParseDevice parses a device description document
func ParseDevice(text string) (*Root, error) {
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, errors.WithStack(generr.Malformed("root", generr.WithCause(err)))
	}
	root := xmlquery.QuerySelector(doc, xpRoot)
	if root == nil {
		return nil, errors.WithStack(generr.Malformed("root", generr.WithMessage("missing <root> element")))
	}
	dev := xmlquery.QuerySelector(root, xpDevice)
	if dev == nil {
		return nil, errors.WithStack(generr.Malformed("root", generr.WithMessage("missing <device> element")))
	}

	r := &Root{XMLName: xmlutil.NodeName(root)}
	var p numParser
	r.SpecVersion = p.specVersion(xmlutil.Child(root, "specVersion"))
	if sv := xmlutil.Child(root, "systemVersion"); sv != nil {
		r.SystemVersion = SystemVersion{
			HW:          p.int(sv, "HW"),
			Major:       p.int(sv, "Major"),
			Minor:       p.int(sv, "Minor"),
			Patch:       p.int(sv, "Patch"),
			Buildnumber: p.int(sv, "Buildnumber"),
			Display:     xmlutil.ChildText(sv, "Display"),
		}
	}
	r.Device = p.device(dev)
	if p.err != nil {
		return nil, p.err
	}
	return r, nil
}

// numParser carries the first numeric conversion error across the
// field by field descent of a document
type numParser struct{ err error }

func (p *numParser) int(n *xmlquery.Node, local string) int {
	s := xmlutil.ChildText(n, local)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil && p.err == nil {
		p.err = errors.WithStack(generr.Malformed(local,
			generr.WithMessage("invalid integer value "+strconv.Quote(s)), generr.WithCause(err)))
	}
	return v
}

func (p *numParser) specVersion(n *xmlquery.Node) SpecVersion {
	if n == nil {
		return SpecVersion{}
	}
	return SpecVersion{Major: p.int(n, "major"), Minor: p.int(n, "minor")}
}

func (p *numParser) device(n *xmlquery.Node) Device {
	d := Device{
		DeviceType:       xmlutil.ChildText(n, "deviceType"),
		FriendlyName:     xmlutil.ChildText(n, "friendlyName"),
		Manufacturer:     xmlutil.ChildText(n, "manufacturer"),
		ManufacturerURL:  xmlutil.ChildText(n, "manufacturerURL"),
		ModelDescription: xmlutil.ChildText(n, "modelDescription"),
		ModelName:        xmlutil.ChildText(n, "modelName"),
		ModelNumber:      xmlutil.ChildText(n, "modelNumber"),
		ModelURL:         xmlutil.ChildText(n, "modelURL"),
		UDN:              xmlutil.ChildText(n, "UDN"),
		UPC:              xmlutil.ChildText(n, "UPC"),
		PresentationURL:  xmlutil.ChildText(n, "presentationURL"),
	}
	for _, icon := range xmlquery.QuerySelectorAll(n, xpIcon) {
		d.Icons = append(d.Icons, Icon{
			Mimetype: xmlutil.ChildText(icon, "mimetype"),
			Width:    p.int(icon, "width"),
			Height:   p.int(icon, "height"),
			Depth:    p.int(icon, "depth"),
			URL:      xmlutil.ChildText(icon, "url"),
		})
	}
	for _, svc := range xmlquery.QuerySelectorAll(n, xpService) {
		d.Services = append(d.Services, Service{
			ServiceType: xmlutil.ChildText(svc, "serviceType"),
			ServiceID:   xmlutil.ChildText(svc, "serviceId"),
			ControlURL:  xmlutil.ChildText(svc, "controlURL"),
			EventSubURL: xmlutil.ChildText(svc, "eventSubURL"),
			SCPDURL:     xmlutil.ChildText(svc, "SCPDURL"),
		})
	}
	for _, sub := range xmlquery.QuerySelectorAll(n, xpSubDevice) {
		d.Devices = append(d.Devices, p.device(sub))
	}
	return d
}

var (
	xpRoot      = xpath.MustCompile(`/root`)
	xpDevice    = xpath.MustCompile(`device`)
	xpIcon      = xpath.MustCompile(`iconList/icon`)
	xpService   = xpath.MustCompile(`serviceList/service`)
	xpSubDevice = xpath.MustCompile(`deviceList/device`)
)
