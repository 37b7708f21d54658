// Package naming turns vendor identifiers from device descriptions into
// the lower case, underscore separated identifiers the generated
// bindings are modelled with, and from there into Go identifiers.
//
// Normalize applies, in order:
//
//	vendor prefix folding   "NewX_AVM-DE_Foo" -> "newXAvmDeFoo"
//	separator stripping     remaining '_' and '-' are removed
//	acronym folding         "NewWLANMACAddress" -> "NewWlanMacAddress"
//	case splitting          "newXAvmDeFoo" -> "new_x_avm_de_foo"
//
// Both rule tables are ordered lists of literal replacements applied
// one after another over the whole identifier. Order matters: a
// pattern must come before any shorter pattern it contains ("DDNS"
// before "DNS"), otherwise the shorter one rewrites part of it first.
// Acronyms missing from the table are not an error; they degrade to
// one word per capital letter.
package naming

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a literal substring replacement
type Rule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// VendorRules returns the vendor extension prefix rules. The AVM
// extension marker "X_AVM-DE_" joins vendor and field with an
// underscore and a hyphen; folding it into one camel case token keeps
// the marker attached to the field it prefixes.
func VendorRules() []Rule {
	return []Rule{
		{"NewX_AVM-DE_", "newXAvmDe"},
		{"NewX_AVM_DE_", "newXAvmDe"},
		{"X_AVM-DE_", "XAvmDe"},
		{"X_", "x"},
	}
}

// AcronymRules returns the acronym table for TR-064 and IGD services
func AcronymRules() []Rule {
	return []Rule{
		{"NATRSIP", "NatRsip"},
		{"NAT", "Nat"},
		{"RSIP", "Rsip"},
		{"FCS", "Fcs"},
		{"ATM", "Atm"},
		{"DAV", "Dav"},
		{"PPP", "Ppp"},
		{"WAN", "Wan"},
		{"MAC", "Mac"},
		{"AIN", "Ain"},
		{"DDNS", "Ddns"},
		{"DNS", "Dns"},
		{"IPTVo", "IptvO"},
		{"IPTV", "Iptv"},
		{"US", "Us"},
		{"VoIP", "Voip"},
		{"AVM", "Avm"},
		{"URL", "Url"},
		{"ATUC", "Atuc"},
		{"CHECK", "Check"},
		{"DSL", "Dsl"},
		{"DS", "Ds"},
		{"SNRG", "Snrg_"},
		{"SNRMT", "Snrmt_"},
		{"SNR", "Snr_"},
		{"LATN", "Latn_"},
		{"HEC", "Hec"},
		{"TAM", "Tam"},
		{"OKZ", "Okz"},
		{"LKZ", "Lkz"},
		{"STUN", "Stun"},
		{"UPnP", "Upnp"},
		{"FTP", "Ftp"},
		{"SSL", "Ssl"},
		{"SMB", "Smb"},
		{"CGI", "Cgi"},
		{"NTP", "Ntp"},
		{"TR069", "Tr069"},
		{"BSSID", "Bssid"},
		{"SSID", "Ssid"},
		{"SID", "Sid"},
		{"UUID", "Uuid"},
		{"OUI", "Oui"},
		{"ATUR", "Atur"},
		{"FEC", "Fec"},
		{"CRC", "Crc"},
		{"PSK", "Psk"},
		{"WEP", "Wep"},
		{"WPA", "Wpa"},
		{"WLAN", "Wlan"},
		{"LAN", "Lan"},
		{"AP", "Ap"},
		{"WPS", "Wps"},
		{"RX", "Rx"},
		{"WOL", "Wol"},
		{"DHCP", "Dhcp"},
		{"ID", "Id"},
		{"IP", "Ip"},
	}
}

// Normalizer normalizes identifiers with fixed rule tables. The zero
// value applies no rules beyond separator stripping and case splitting.
type Normalizer struct {
	vendor   []Rule
	acronyms []Rule
}

// New returns a Normalizer for copies of the given rule tables
func New(vendor, acronyms []Rule) *Normalizer {
	return &Normalizer{
		vendor:   append([]Rule(nil), vendor...),
		acronyms: append([]Rule(nil), acronyms...),
	}
}

// Default returns a Normalizer for VendorRules and AcronymRules
func Default() *Normalizer { return New(VendorRules(), AcronymRules()) }

// WithAcronyms returns a copy of n whose acronym table is extra
// followed by n's table, so extra rules take precedence.
func (n *Normalizer) WithAcronyms(extra ...Rule) *Normalizer {
	return New(n.vendor, append(append([]Rule(nil), extra...), n.acronyms...))
}

// Acronyms returns a copy of the acronym table
func (n *Normalizer) Acronyms() []Rule { return append([]Rule(nil), n.acronyms...) }

// Validate reports rules that can never match because an earlier rule
// of the same table rewrites a part of their pattern.
func (n *Normalizer) Validate() error {
	for _, table := range [][]Rule{n.vendor, n.acronyms} {
		for j, later := range table {
			if later.Pattern == "" {
				return fmt.Errorf("rule %d: empty pattern", j)
			}
			for _, earlier := range table[:j] {
				if earlier.Pattern != later.Pattern && strings.Contains(later.Pattern, earlier.Pattern) {
					return fmt.Errorf("rule %q is shadowed by earlier rule %q", later.Pattern, earlier.Pattern)
				}
			}
		}
	}
	return nil
}

// Normalize returns the lower case, underscore separated form of raw.
// It is a pure function of raw.
func (n *Normalizer) Normalize(raw string) string {
	s := apply(raw, n.vendor)
	s = strings.NewReplacer("_", "", "-", "").Replace(s)
	s = apply(s, n.acronyms)
	return splitCase(s)
}

func apply(s string, rules []Rule) string {
	for _, r := range rules {
		s = strings.ReplaceAll(s, r.Pattern, r.Replacement)
	}
	return s
}

// splitCase lower cases every upper case letter, inserting '_' before
// it unless it starts the identifier. Runs of '_' collapse and a
// trailing '_' is dropped.
func splitCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/2)
	last := rune(0)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && last != '_' {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		} else if r == '_' && (last == '_' || i == 0) {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return strings.TrimRight(b.String(), "_")
}

// ResponseTypeName returns the response type name for an action.
// It is not normalized: response types follow type naming, so only
// '-' and '_' are removed from the raw action name.
func ResponseTypeName(action string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(action) + "Response"
}

// GoName returns the exported Go identifier for a normalized name,
// e.g. "new_x_avm_de_foo" -> "NewXAvmDeFoo".
func GoName(normalized string) string {
	var b strings.Builder
	for _, part := range strings.Split(normalized, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	s := b.String()
	if s == "" {
		return "X"
	}
	if r, _ := utf8.DecodeRuneInString(s); !unicode.IsLetter(r) {
		s = "X" + s
	}
	return s
}

// GoParamName returns the unexported Go identifier for a normalized
// name, e.g. "new_enable" -> "newEnable". Go keywords and names used
// by generated code get a trailing underscore.
func GoParamName(normalized string) string {
	s := GoName(normalized)
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToLower(r)) + s[size:]
	if token.IsKeyword(s) || reserved[s] {
		s += "_"
	}
	return s
}

// reserved are identifiers generated request functions refer to
var reserved = map[string]bool{
	"shared": true,
}
