package description

import (
	"testing"

	"github.com/andaru/scpdgen/generr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDeviceDescription = `<?xml version="1.0"?>
<root xmlns="urn:dslforum-org:device-1-0">
<specVersion><major>1</major><minor>0</minor></specVersion>
<systemVersion>
	<HW>226</HW><Major>154</Major><Minor>7</Minor><Patch>57</Patch>
	<Buildnumber>101587</Buildnumber><Display>154.07.57</Display>
</systemVersion>
<device>
	<deviceType>urn:dslforum-org:device:InternetGatewayDevice:1</deviceType>
	<friendlyName>FRITZ!Box 7590</friendlyName>
	<manufacturer>AVM</manufacturer>
	<manufacturerURL>http://www.avm.de</manufacturerURL>
	<modelDescription>FRITZ!Box 7590</modelDescription>
	<modelName>FRITZ!Box 7590</modelName>
	<modelNumber> - </modelNumber>
	<modelURL>http://www.avm.de</modelURL>
	<UDN>uuid:739f2409-bccb-40e7-8e6c-3431C4D5EFA0</UDN>
	<iconList>
		<icon><mimetype>image/gif</mimetype><width>118</width><height>119</height><depth>8</depth><url>/ligd.gif</url></icon>
	</iconList>
	<serviceList>
		<service>
			<serviceType>urn:dslforum-org:service:DeviceInfo:1</serviceType>
			<serviceId>urn:DeviceInfo-com:serviceId:DeviceInfo1</serviceId>
			<controlURL>/upnp/control/deviceinfo</controlURL>
			<eventSubURL>/upnp/control/deviceinfo</eventSubURL>
			<SCPDURL>/deviceinfoSCPD.xml</SCPDURL>
		</service>
	</serviceList>
	<deviceList>
		<device>
			<deviceType>urn:dslforum-org:device:LANDevice:1</deviceType>
			<friendlyName>FRITZ!Box 7590</friendlyName>
			<serviceList>
				<service>
					<serviceType>
						urn:dslforum-org:service:WLANConfiguration:1
					</serviceType>
					<serviceId>urn:WLANConfiguration-com:serviceId:WLANConfiguration1</serviceId>
					<controlURL>/upnp/control/wlanconfig1</controlURL>
					<eventSubURL>/upnp/control/wlanconfig1</eventSubURL>
					<SCPDURL>/wlanconfigSCPD.xml</SCPDURL>
				</service>
			</serviceList>
		</device>
	</deviceList>
	<presentationURL>http://fritz.box</presentationURL>
</device>
</root>`

const testSCPD = `<?xml version="1.0"?>
<scpd xmlns="urn:dslforum-org:service-1-0">
<specVersion><major>1</major><minor>0</minor></specVersion>
<actionList>
	<action>
		<name>GetInfo</name>
		<argumentList>
			<argument>
				<name>NewEnable</name>
				<direction>out</direction>
				<relatedStateVariable>Enable</relatedStateVariable>
			</argument>
			<argument>
				<name>NewStatus</name>
				<direction> out </direction>
				<relatedStateVariable>Status</relatedStateVariable>
			</argument>
		</argumentList>
	</action>
	<action>
		<name>SetEnable</name>
		<argumentList>
			<argument>
				<name>NewEnable</name>
				<direction>in</direction>
				<relatedStateVariable>Enable</relatedStateVariable>
			</argument>
		</argumentList>
	</action>
	<action>
		<name>Reboot</name>
	</action>
</actionList>
<serviceStateTable>
	<stateVariable sendEvents="no">
		<name>Enable</name>
		<dataType>boolean</dataType>
		<defaultValue>1</defaultValue>
	</stateVariable>
	<stateVariable sendEvents="yes">
		<name>Status</name>
		<dataType>string</dataType>
		<allowedValueList>
			<allowedValue>Up</allowedValue>
			<allowedValue> Disabled </allowedValue>
		</allowedValueList>
	</stateVariable>
	<stateVariable sendEvents="no">
		<name>Channel</name>
		<dataType>ui1</dataType>
		<allowedValueRange><minimum>1</minimum><maximum>13</maximum><step>1</step></allowedValueRange>
	</stateVariable>
</serviceStateTable>
</scpd>`

func TestParseDevice(t *testing.T) {
	r, err := ParseDevice(testDeviceDescription)
	require.NoError(t, err)
	a := assert.New(t)

	a.Equal("root", r.XMLName.Local)
	a.Equal("urn:dslforum-org:device-1-0", r.XMLName.Space)
	a.Equal(SpecVersion{Major: 1, Minor: 0}, r.SpecVersion)
	a.Equal(SystemVersion{HW: 226, Major: 154, Minor: 7, Patch: 57, Buildnumber: 101587, Display: "154.07.57"}, r.SystemVersion)

	d := r.Device
	a.Equal("FRITZ!Box 7590", d.FriendlyName)
	a.Equal("-", d.ModelNumber)
	a.Equal("http://fritz.box", d.PresentationURL)
	a.Equal([]Icon{{Mimetype: "image/gif", Width: 118, Height: 119, Depth: 8, URL: "/ligd.gif"}}, d.Icons)
	require.Len(t, d.Services, 1)
	a.Equal(Service{
		ServiceType: "urn:dslforum-org:service:DeviceInfo:1",
		ServiceID:   "urn:DeviceInfo-com:serviceId:DeviceInfo1",
		ControlURL:  "/upnp/control/deviceinfo",
		EventSubURL: "/upnp/control/deviceinfo",
		SCPDURL:     "/deviceinfoSCPD.xml",
	}, d.Services[0])

	require.Len(t, d.Devices, 1)
	lan := d.Devices[0]
	a.Equal("urn:dslforum-org:device:LANDevice:1", lan.DeviceType)
	require.Len(t, lan.Services, 1)
	a.Equal("urn:dslforum-org:service:WLANConfiguration:1", lan.Services[0].ServiceType)
	a.Empty(lan.Devices)
}

func TestParseDeviceErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "not xml", input: "<root><device>"},
		{name: "wrong root", input: `<scpd><actionList/></scpd>`},
		{name: "no device", input: `<root><specVersion><major>1</major></specVersion></root>`},
		{name: "bad number", input: `<root><specVersion><major>one</major></specVersion><device/></root>`},
		{name: "bad icon", input: `<root><device><iconList><icon><width>x</width></icon></iconList></device></root>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDevice(tc.input)
			assert.True(t, generr.Is(err, generr.KindParse), "got %v", err)
		})
	}
}

func TestServiceToken(t *testing.T) {
	for _, tc := range []struct {
		serviceType string
		want        string
		wantErr     bool
	}{
		{serviceType: "urn:dslforum-org:service:WLANConfiguration:1", want: "WLANConfiguration"},
		{serviceType: "urn:schemas-upnp-org:service:WANIPConnection:1", want: "WANIPConnection"},
		{serviceType: "urn:schemas-any-com:service:X_AVM-DE_Homeauto:1", want: "X_AVM-DE_Homeauto"},
		{serviceType: "urn:dslforum-org:service", wantErr: true},
		{serviceType: "urn:a:b::1", wantErr: true},
		{serviceType: "", wantErr: true},
	} {
		t.Run(tc.serviceType, func(t *testing.T) {
			a := assert.New(t)
			got, err := Service{ServiceType: tc.serviceType}.Token()
			if tc.wantErr {
				a.True(generr.Is(err, generr.KindParse))
				return
			}
			a.NoError(err)
			a.Equal(tc.want, got)
		})
	}
}

func TestParseSCPD(t *testing.T) {
	s, err := ParseSCPD(testSCPD)
	require.NoError(t, err)
	a := assert.New(t)

	a.Equal("scpd", s.XMLName.Local)
	a.Equal(SpecVersion{Major: 1}, s.SpecVersion)
	a.Equal([]Action{
		{Name: "GetInfo", Arguments: []Argument{
			{Name: "NewEnable", Direction: Out, RelatedStateVariable: "Enable"},
			{Name: "NewStatus", Direction: Out, RelatedStateVariable: "Status"},
		}},
		{Name: "SetEnable", Arguments: []Argument{
			{Name: "NewEnable", Direction: In, RelatedStateVariable: "Enable"},
		}},
		{Name: "Reboot"},
	}, s.Actions)

	require.Len(t, s.StateVariables, 3)
	a.Equal(StateVariable{Name: "Enable", DataType: "boolean", DefaultValue: "1"}, s.StateVariables[0])
	a.Equal(StateVariable{Name: "Status", DataType: "string", SendEvents: true, AllowedValues: []string{"Up", "Disabled"}}, s.StateVariables[1])
	a.Equal(&AllowedValueRange{Minimum: "1", Maximum: "13", Step: "1"}, s.StateVariables[2].AllowedRange)

	v, ok := s.StateVariable("Status")
	a.True(ok)
	a.Equal("string", v.DataType)
	_, ok = s.StateVariable("Missing")
	a.False(ok)
}

func TestParseSCPDErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "truncated", input: `<scpd><actionList><action>`},
		{name: "wrong root", input: `<root><device/></root>`},
		{name: "bad direction", input: `<scpd><actionList><action><name>A</name><argumentList>
			<argument><name>X</name><direction>both</direction><relatedStateVariable>X</relatedStateVariable></argument>
			</argumentList></action></actionList></scpd>`},
		{name: "unnamed action", input: `<scpd><actionList><action><argumentList/></action></actionList></scpd>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSCPD(tc.input)
			assert.True(t, generr.Is(err, generr.KindParse), "got %v", err)
		})
	}
}

func TestDirection(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "in", want: In},
		{in: "OUT", want: Out},
		{in: " out\n", want: Out},
		{in: "inout", wantErr: true},
		{in: "", wantErr: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			a := assert.New(t)
			var d Direction
			err := d.UnmarshalText([]byte(tc.in))
			if tc.wantErr {
				a.Error(err)
				return
			}
			a.NoError(err)
			a.Equal(tc.want, d)
			b, _ := d.MarshalText()
			a.Equal(tc.want.String(), string(b))
		})
	}
	assert.Equal(t, "Direction(7)", Direction(7).String())
}
