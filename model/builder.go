package model

import (
	"github.com/andaru/scpdgen/description"
	"github.com/andaru/scpdgen/generr"
	"github.com/andaru/scpdgen/naming"
	"github.com/andaru/scpdgen/typemap"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Builder builds action models from service descriptions. A nil
// resolver or normalizer means the respective default.
type Builder struct {
	Types *typemap.Resolver
	Names *naming.Normalizer
}

func (b *Builder) types() *typemap.Resolver {
	if b.Types == nil {
		return typemap.Default()
	}
	return b.Types
}

func (b *Builder) names() *naming.Normalizer {
	if b.Names == nil {
		return naming.Default()
	}
	return b.Names
}

// Build returns the models of every action of doc, in document order.
//
// Each action's raw name is added to envelope once the action has been
// modelled completely. The first failing argument aborts the service;
// no model is returned for it or any action after it.
func (b *Builder) Build(doc *description.SCPD, svc description.Service, envelope *NameSet) ([]ActionModel, error) {
	types, names := b.types(), b.names()
	actions := make([]ActionModel, 0, len(doc.Actions))
	for _, action := range doc.Actions {
		m := ActionModel{
			Name:                action.Name,
			ResponseTypeName:    naming.ResponseTypeName(action.Name),
			RequestFunctionName: names.Normalize(action.Name),
		}
		for _, arg := range action.Arguments {
			ctx := []generr.Option{
				generr.WithService(svc.ServiceType),
				generr.WithAction(action.Name),
				generr.WithArgument(arg.Name),
			}
			v, ok := doc.StateVariable(arg.RelatedStateVariable)
			if !ok {
				return nil, errors.WithStack(generr.UnknownStateVariable(arg.RelatedStateVariable, ctx...))
			}
			typ, err := types.Resolve(v.DataType)
			if err != nil {
				ctx = append(ctx, generr.WithMessage("state variable "+v.Name))
				return nil, errors.WithStack(generr.UnmappedType(v.DataType, ctx...))
			}
			f := Field{
				RawName:       arg.Name,
				Name:          names.Normalize(arg.Name),
				Type:          typ,
				Default:       v.DefaultValue,
				AllowedValues: v.AllowedValues,
			}
			switch arg.Direction {
			case description.In:
				m.Parameters = append(m.Parameters, f)
			case description.Out:
				m.ResponseFields = append(m.ResponseFields, f)
			default:
				return nil, errors.WithStack(generr.Malformed("direction", ctx...))
			}
		}
		if glog.V(2) {
			glog.Infof("%s: action %s: %d parameters, %d response fields",
				svc.ServiceType, action.Name, len(m.Parameters), len(m.ResponseFields))
		}
		actions = append(actions, m)
		if envelope != nil {
			envelope.Add(action.Name)
		}
	}
	return actions, nil
}

// BuildUnit builds the ServiceUnit for svc from its description doc.
// Module names are left for the aggregator.
func (b *Builder) BuildUnit(doc *description.SCPD, svc description.Service, envelope *NameSet) (ServiceUnit, error) {
	token, err := svc.Token()
	if err != nil {
		return ServiceUnit{}, err
	}
	// build into a scratch set so a failing service contributes no names
	var names NameSet
	actions, err := b.Build(doc, svc, &names)
	if err != nil {
		return ServiceUnit{}, err
	}
	if envelope != nil {
		envelope.Add(names.Names()...)
	}
	return ServiceUnit{
		ServiceType: svc.ServiceType,
		ServiceID:   svc.ServiceID,
		ControlURL:  svc.ControlURL,
		SCPDURL:     svc.SCPDURL,
		Name:        b.names().Normalize(token),
		Actions:     actions,
	}, nil
}
