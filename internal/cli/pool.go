package cli

import (
	"fmt"
	"slices"
)

// Pool indexes the parameters of the commands participating in one parse: the
// root eagerly, plus the matched subcommand the moment its token is
// classified. A Pool lives for exactly one Parse call.
type Pool struct {
	commands    []*Command
	params      map[string]*Param
	shorthands  map[string]string
	positionals []string
	groups      []groupEntry
}

type groupEntry struct {
	members   []string
	exclusive bool
}

func newPool(root *Command) (*Pool, error) {
	p := &Pool{
		params:     map[string]*Param{},
		shorthands: map[string]string{},
	}

	if root != nil {
		if err := p.Register(root); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Register indexes a command's parameters into the pool.
func (p *Pool) Register(cmd *Command) error {
	p.commands = append(p.commands, cmd)

	for _, schema := range cmd.Params {
		switch s := schema.(type) {
		case Param:
			if _, err := p.registerParam(s); err != nil {
				return err
			}
		case Group:
			if err := p.registerGroup(s); err != nil {
				return err
			}
		}
	}

	return nil
}

// registerParam indexes one parameter and returns its canonical name.
func (p *Pool) registerParam(param Param) (string, error) {
	name := canonicalName(param.Name)

	if !isFlagName(param.Name) {
		if param.Kind == KindEnable || param.Kind == KindDisable {
			return "", fmt.Errorf("%w: positional %s cannot be a switch", ErrBadSchema, name)
		}

		p.positionals = append(p.positionals, name)
		p.params[name] = &param

		return name, nil
	}

	if param.Shorthand != "" {
		p.shorthands[canonicalName(param.Shorthand)] = name
	}

	p.params[name] = &param

	return name, nil
}

func (p *Pool) registerGroup(group Group) error {
	entry := groupEntry{exclusive: group.MutuallyExclusive}

	for _, param := range group.Params {
		name, err := p.registerParam(param)
		if err != nil {
			return err
		}

		entry.members = append(entry.members, name)
	}

	p.groups = append(p.groups, entry)

	return nil
}

// NextPositional pops the head of the positional queue. Excess positional
// tokens are rejected here.
func (p *Pool) NextPositional() (*Param, error) {
	if len(p.positionals) == 0 {
		return nil, ErrTooManyPositionals
	}

	name := p.positionals[0]
	p.positionals = p.positionals[1:]

	return p.params[name], nil
}

// RemainingPositionals returns the names still queued.
func (p *Pool) RemainingPositionals() []string {
	return slices.Clone(p.positionals)
}

// Resolve maps a flag token to its parameter: markers stripped, shorthand
// followed. A name belonging to an un-consumed positional never doubles as a
// flag.
func (p *Pool) Resolve(token string) (*Param, error) {
	name := canonicalName(token)

	if slices.Contains(p.positionals, name) {
		return nil, fmt.Errorf("%w: %s", ErrPositionalAsFlag, name)
	}

	if long, ok := p.shorthands[name]; ok {
		name = long
	}

	if slices.Contains(p.positionals, name) {
		return nil, fmt.Errorf("%w: %s", ErrPositionalAsFlag, name)
	}

	param, ok := p.params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlag, canonicalName(token))
	}

	if !isFlagName(param.Name) {
		return nil, fmt.Errorf("%w: %s", ErrPositionalAsFlag, name)
	}

	return param, nil
}

// Defaults yields the merged default map for every registered parameter:
// false/true for Enable/Disable switches, the converted declared default
// where present, and no entry otherwise.
func (p *Pool) Defaults() (Args, error) {
	defaults := Args{}

	for name, param := range p.params {
		switch {
		case param.Kind == KindEnable:
			defaults[name] = BoolValue(false)
		case param.Kind == KindDisable:
			defaults[name] = BoolValue(true)
		case param.HasDefault:
			value, err := convertOne(param, param.Default)
			if err != nil {
				return nil, err
			}

			defaults[name] = value
		}
	}

	return defaults, nil
}

// ExclusiveGroups yields the member names of each mutually-exclusive group.
func (p *Pool) ExclusiveGroups() [][]string {
	var groups [][]string

	for _, entry := range p.groups {
		if entry.exclusive {
			groups = append(groups, entry.members)
		}
	}

	return groups
}

// Params returns every registered parameter, positionals included.
func (p *Pool) Params() map[string]*Param {
	return p.params
}

// convertOne applies the parameter's declared conversion to a single raw
// string. A nil Convert passes the string through.
func convertOne(param *Param, raw string) (Value, error) {
	if param.Convert == nil {
		return StringValue(raw), nil
	}

	value, err := param.Convert(raw)
	if err != nil {
		return Value{}, fmt.Errorf("%w for %s: %v", ErrInvalidValue, canonicalName(param.Name), err)
	}

	return value, nil
}
