package parameters

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/schuko"
	"gopkg.in/yaml.v3"
)

// ConfigPrefix prefixes parameter names in an application configuration,
// e.g. "engrave.slurthickness".
const ConfigPrefix = "engrave."

// FromConfiguration creates registers with default values, overridden by
// every parameter key set in conf. Malformed values are traced and ignored.
func FromConfiguration(conf schuko.Configuration) *Registers {
	regs := NewRegisters()
	if conf == nil {
		return regs
	}
	for p := none + 1; p < P_STOPPER; p++ {
		key := ConfigPrefix + p.String()
		if !conf.IsSet(key) {
			continue
		}
		if err := regs.set(p, conf.GetString(key)); err != nil {
			tracer().Errorf("configuration key %s: %v", key, err)
		}
	}
	return regs
}

// LoadYAML reads a style sheet of engraving parameters. Keys are parameter
// names without prefix:
//
//	unit: 9px
//	slurthickness: 8
//	cuesize: 70%
//
// Unknown keys are an error.
func LoadYAML(r io.Reader) (*Registers, error) {
	var sheet map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&sheet); err != nil && err != io.EOF {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode parameter style sheet")
	}
	regs := NewRegisters()
	for k, v := range sheet {
		p, ok := parameterByName(k)
		if !ok {
			return nil, core.Error(core.EINVALID, "unknown engraving parameter %q", k)
		}
		if err := regs.set(p, fmt.Sprintf("%v", v)); err != nil {
			return nil, err
		}
	}
	return regs, nil
}

// PushNamed parses a textual value for a parameter given by name and pushes
// it, either globally or for the current group.
func (regs *Registers) PushNamed(name, value string) error {
	p, ok := parameterByName(name)
	if !ok {
		return core.Error(core.EINVALID, "unknown engraving parameter %q", name)
	}
	return regs.set(p, value)
}

func parameterByName(name string) (EngravingParameter, bool) {
	name = strings.ToLower(strings.TrimPrefix(name, ConfigPrefix))
	for p := none + 1; p < P_STOPPER; p++ {
		if parameterNames[p] == name {
			return p, true
		}
	}
	return none, false
}

// set parses a textual value according to the type of the parameter's
// default value and pushes it.
func (regs *Registers) set(p EngravingParameter, s string) error {
	s = strings.TrimSpace(s)
	switch regs.base[p].(type) {
	case dimen.Dimen:
		d, ispcnt, err := dimen.ParseDimen(s)
		if err != nil || ispcnt {
			return core.Error(core.EINVALID, "parameter %s: illegal dimension %q", p, s)
		}
		regs.Push(p, d)
	case percent.Percent:
		pc, err := percent.FromString(s)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "parameter %s: illegal percentage %q", p, s)
		}
		regs.Push(p, pc)
	case bool:
		switch strings.ToLower(s) {
		case "true", "yes", "on", "1":
			regs.Push(p, true)
		case "false", "no", "off", "0":
			regs.Push(p, false)
		default:
			return core.Error(core.EINVALID, "parameter %s: illegal flag %q", p, s)
		}
	case int:
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return core.WrapError(err, core.EINVALID, "parameter %s: illegal number %q", p, s)
		}
		regs.Push(p, n)
	default:
		return core.Error(core.EINTERNAL, "parameter %s has no default", p)
	}
	return nil
}
