package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := Default()
	for _, tc := range []struct {
		in, want string
	}{
		{"GetInfo", "get_info"},
		{"NewEnable", "new_enable"},
		{"Enable", "enable"},
		{"NewX_AVM-DE_Foo", "new_x_avm_de_foo"},
		{"NewX_AVM_DE_Foo", "new_x_avm_de_foo"},
		{"X_AVM-DE_Foo", "x_avm_de_foo"},
		{"X_AVM-DE_GetWLANHybridMode", "x_avm_de_get_wlan_hybrid_mode"},
		{"X_VoIP", "x_voip"},
		{"WANIPConnection", "wan_ip_connection"},
		{"WANDSLLinkConfig", "wan_dsl_link_config"},
		{"WANCommonInterfaceConfig", "wan_common_interface_config"},
		{"LANHostConfigManagement", "lan_host_config_management"},
		{"WLANConfiguration", "wlan_configuration"},
		{"Layer3Forwarding", "layer3_forwarding"},
		{"NewMACAddress", "new_mac_address"},
		{"NewBSSID", "new_bssid"},
		{"NewSSID", "new_ssid"},
		{"NewDDNSProvider", "new_ddns_provider"},
		{"NewDNSServer1", "new_dns_server1"},
		{"NewIPTVoptimized", "new_iptv_optimized"},
		{"NewNATRSIPStatus", "new_nat_rsip_status"},
		{"NewTR069Enabled", "new_tr069_enabled"},
		{"NewUpnpControlEnabled", "new_upnp_control_enabled"},
		{"NewSNRGds", "new_snrg_ds"},
		{"NewSNRMTds", "new_snrmt_ds"},
		{"NewSNR", "new_snr"},
		{"GetGenericPortMappingEntry", "get_generic_port_mapping_entry"},
		{"Some-Hyphenated_Name", "some_hyphenated_name"},
		// acronyms absent from the table split per capital letter
		{"NewXYZValue", "new_x_y_z_value"},
		{"", ""},
	} {
		t.Run(tc.in, func(t *testing.T) { assert.New(t).Equal(tc.want, n.Normalize(tc.in)) })
	}
}

func TestNormalizeStable(t *testing.T) {
	n := Default()
	for _, in := range []string{"NewX_AVM-DE_Foo", "WANIPConnection", "new_enable", "___", "ÄÖÜ", "A_B-C"} {
		t.Run(in, func(t *testing.T) {
			a := assert.New(t)
			once := n.Normalize(in)
			a.Equal(once, n.Normalize(in))
			a.NotPanics(func() { n.Normalize(once) })
			a.Equal(n.Normalize(once), n.Normalize(once))
			a.NotContains(once, "__")
		})
	}
}

func TestNormalizeTableOrder(t *testing.T) {
	// with "DNS" applied before "DDNS", the longer acronym is split up
	wrong := New(nil, []Rule{{"DNS", "Dns"}, {"DDNS", "Ddns"}})
	right := New(nil, []Rule{{"DDNS", "Ddns"}, {"DNS", "Dns"}})

	a := assert.New(t)
	a.Equal("new_d_dns_provider", wrong.Normalize("NewDDNSProvider"))
	a.Equal("new_ddns_provider", right.Normalize("NewDDNSProvider"))
	a.EqualError(wrong.Validate(), `rule "DDNS" is shadowed by earlier rule "DNS"`)
	a.NoError(right.Validate())
}

func TestValidate(t *testing.T) {
	a := assert.New(t)
	a.NoError(Default().Validate())
	a.Error(New([]Rule{{"", "x"}}, nil).Validate())
	a.Error(Default().WithAcronyms(Rule{"WL", "Wl"}).Validate())
}

func TestWithAcronyms(t *testing.T) {
	base := Default()
	n := base.WithAcronyms(Rule{"LTE", "Lte"})

	a := assert.New(t)
	a.Equal("new_lte_status", n.Normalize("NewLTEStatus"))
	a.Equal("new_l_t_e_status", base.Normalize("NewLTEStatus"))
	a.Equal(Rule{"LTE", "Lte"}, n.Acronyms()[0])
	a.Len(n.Acronyms(), len(base.Acronyms())+1)
}

func TestRuleTablesAreCopies(t *testing.T) {
	rules := AcronymRules()
	n := New(VendorRules(), rules)
	rules[0] = Rule{"Get", "XXX"}
	assert.Equal(t, "get_info", n.Normalize("GetInfo"))

	got := n.Acronyms()
	got[0] = Rule{"Get", "XXX"}
	assert.Equal(t, "get_info", n.Normalize("GetInfo"))
}

func TestZeroNormalizer(t *testing.T) {
	var n Normalizer
	assert.Equal(t, "new_w_l_a_n_enable", n.Normalize("New_WLAN-Enable"))
}

func TestResponseTypeName(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"GetInfo", "GetInfoResponse"},
		{"X_AVM-DE_GetWLANHybridMode", "XAVMDEGetWLANHybridModeResponse"},
		{"GetSecurityKeys", "GetSecurityKeysResponse"},
	} {
		t.Run(tc.in, func(t *testing.T) { assert.New(t).Equal(tc.want, ResponseTypeName(tc.in)) })
	}
}

func TestGoName(t *testing.T) {
	for _, tc := range []struct {
		in, exported, param string
	}{
		{"new_enable", "NewEnable", "newEnable"},
		{"new_x_avm_de_foo", "NewXAvmDeFoo", "newXAvmDeFoo"},
		{"wan_ip_connection", "WanIpConnection", "wanIpConnection"},
		{"layer3_forwarding", "Layer3Forwarding", "layer3Forwarding"},
		{"type", "Type", "type_"},
		{"range", "Range", "range_"},
		{"shared", "Shared", "shared_"},
		{"1st", "X1st", "x1st"},
		{"", "X", "x"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			a := assert.New(t)
			a.Equal(tc.exported, GoName(tc.in))
			a.Equal(tc.param, GoParamName(tc.in))
		})
	}
}
