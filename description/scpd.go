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

// SCPD is a service control protocol description document
type SCPD struct {
	XMLName        xml.Name
	SpecVersion    SpecVersion
	Actions        []Action
	StateVariables []StateVariable
}

// StateVariable returns the named entry of the service state table
func (s *SCPD) StateVariable(name string) (*StateVariable, bool) {
	for i := range s.StateVariables {
		if s.StateVariables[i].Name == name {
			return &s.StateVariables[i], true
		}
	}
	return nil, false
}

// Action is a remotely invocable operation of a service
type Action struct {
	Name      string
	Arguments []Argument
}

// Argument is an in or out argument of an Action. Its type is not
// declared inline but by the related state variable.
type Argument struct {
	Name                 string
	Direction            Direction
	RelatedStateVariable string
}

// Direction is an argument direction
type Direction int

const (
	// In is a request (input) argument
	In Direction = iota
	// Out is a response (output) argument
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "in":
		*d = In
	case "out":
		*d = Out
	default:
		return errors.Errorf("unknown argument direction %q", b)
	}
	return nil
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// StateVariable is an entry of the service state table
type StateVariable struct {
	Name          string
	DataType      string
	DefaultValue  string
	SendEvents    bool
	AllowedValues []string
	AllowedRange  *AllowedValueRange
}

// AllowedValueRange bounds a numeric state variable
type AllowedValueRange struct {
	Minimum string
	Maximum string
	Step    string
}

// ParseSCPD parses a service control protocol description document
func ParseSCPD(text string) (*SCPD, error) {
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, errors.WithStack(generr.Malformed("scpd", generr.WithCause(err)))
	}
	root := xmlquery.QuerySelector(doc, xpSCPD)
	if root == nil {
		return nil, errors.WithStack(generr.Malformed("scpd", generr.WithMessage("missing <scpd> element")))
	}

	var p numParser
	s := &SCPD{
		XMLName:     xmlutil.NodeName(root),
		SpecVersion: p.specVersion(xmlutil.Child(root, "specVersion")),
	}
	if p.err != nil {
		return nil, p.err
	}

	for _, an := range xmlquery.QuerySelectorAll(root, xpAction) {
		action := Action{Name: xmlutil.ChildText(an, "name")}
		if action.Name == "" {
			return nil, errors.WithStack(generr.Malformed("action", generr.WithMessage("action without a name")))
		}
		for _, arg := range xmlquery.QuerySelectorAll(an, xpArgument) {
			a := Argument{
				Name:                 xmlutil.ChildText(arg, "name"),
				RelatedStateVariable: xmlutil.ChildText(arg, "relatedStateVariable"),
			}
			if err := a.Direction.UnmarshalText([]byte(xmlutil.ChildText(arg, "direction"))); err != nil {
				return nil, errors.WithStack(generr.Malformed("direction",
					generr.WithAction(action.Name), generr.WithArgument(a.Name), generr.WithCause(err)))
			}
			action.Arguments = append(action.Arguments, a)
		}
		s.Actions = append(s.Actions, action)
	}

	for _, vn := range xmlquery.QuerySelectorAll(root, xpStateVariable) {
		v := StateVariable{
			Name:         xmlutil.ChildText(vn, "name"),
			DataType:     xmlutil.ChildText(vn, "dataType"),
			DefaultValue: xmlutil.ChildText(vn, "defaultValue"),
			SendEvents:   strings.EqualFold(strings.TrimSpace(vn.SelectAttr("sendEvents")), "yes"),
		}
		for _, av := range xmlquery.QuerySelectorAll(vn, xpAllowedValue) {
			v.AllowedValues = append(v.AllowedValues, strings.TrimSpace(av.InnerText()))
		}
		if rn := xmlutil.Child(vn, "allowedValueRange"); rn != nil {
			v.AllowedRange = &AllowedValueRange{
				Minimum: xmlutil.ChildText(rn, "minimum"),
				Maximum: xmlutil.ChildText(rn, "maximum"),
				Step:    xmlutil.ChildText(rn, "step"),
			}
		}
		s.StateVariables = append(s.StateVariables, v)
	}
	return s, nil
}

var (
	xpSCPD          = xpath.MustCompile(`/scpd`)
	xpAction        = xpath.MustCompile(`actionList/action`)
	xpArgument      = xpath.MustCompile(`argumentList/argument`)
	xpStateVariable = xpath.MustCompile(`serviceStateTable/stateVariable`)
	xpAllowedValue  = xpath.MustCompile(`allowedValueList/allowedValue`)
)
