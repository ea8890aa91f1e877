package cli

import (
	"fmt"
	"slices"
	"strings"
)

// resolveArgs turns the intermediate map into the final argument map:
// mutual-exclusion check, positional defaulting, per-entry coercion, then the
// merge with declared defaults (explicit values win).
func (p *Parser) resolveArgs() (Args, error) {
	if err := p.checkExclusiveGroups(); err != nil {
		return nil, err
	}

	coerced := Args{}

	if err := p.defaultRemainingPositionals(coerced); err != nil {
		return nil, err
	}

	for _, name := range p.seen {
		value, err := p.coerce(name, p.intermediates[name])
		if err != nil {
			return nil, err
		}

		coerced[name] = value
	}

	args, err := p.pool.Defaults()
	if err != nil {
		return nil, err
	}

	for name, value := range coerced {
		args[name] = value
	}

	args[KeySubcommand] = StringValue(p.matched)

	return args, nil
}

// checkExclusiveGroups fails when more than one member of a
// mutually-exclusive group was supplied.
func (p *Parser) checkExclusiveGroups() error {
	for _, group := range p.pool.ExclusiveGroups() {
		var conflicts []string

		for _, name := range p.seen {
			if slices.Contains(group, name) {
				conflicts = append(conflicts, name)
			}
		}

		if len(conflicts) > 1 {
			return fmt.Errorf("%w: %s", ErrConflictingFlags, strings.Join(conflicts, ", "))
		}
	}

	return nil
}

// defaultRemainingPositionals drains the unconsumed positional queue,
// installing converted defaults and failing on positionals without one.
func (p *Parser) defaultRemainingPositionals(coerced Args) error {
	for _, name := range p.pool.RemainingPositionals() {
		param, err := p.pool.NextPositional()
		if err != nil {
			return err
		}

		if !param.HasDefault {
			return fmt.Errorf("%w: %s", ErrMissingPositional, name)
		}

		value, err := convertOne(param, param.Default)
		if err != nil {
			return err
		}

		coerced[name] = value
	}

	return nil
}

// coerce converts one intermediate tuple according to its parameter's
// declared kind and conversion.
func (p *Parser) coerce(name string, raw []string) (Value, error) {
	param, ok := p.pool.Params()[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownFlag, name)
	}

	switch param.Kind {
	case KindEnable:
		return BoolValue(true), nil
	case KindDisable:
		return BoolValue(false), nil
	}

	// a declared choice set always constrains a single raw value,
	// regardless of kind
	if len(param.Choices) != 0 {
		return p.coerceChoice(param, name, raw)
	}

	switch param.Kind {
	case KindMultiple:
		return p.coerceMultiple(param, name, raw)
	case KindOptional:
		if len(raw) == 0 {
			if param.HasDefault {
				return convertOne(param, param.Default)
			}

			return Value{}, fmt.Errorf("%w for %s: needs a value", ErrInvalidValue, name)
		}

		fallthrough
	default:
		return p.coerceSingle(param, name, raw)
	}
}

func (p *Parser) coerceChoice(param *Param, name string, raw []string) (Value, error) {
	if len(raw) != 1 {
		return Value{}, fmt.Errorf("%w for %s: needs exactly one value", ErrInvalidValue, name)
	}

	if !slices.Contains(param.Choices, raw[0]) {
		return Value{}, fmt.Errorf("%w: %q is not valid for %s", ErrInvalidChoice, raw[0], name)
	}

	return StringValue(raw[0]), nil
}

func (p *Parser) coerceSingle(param *Param, name string, raw []string) (Value, error) {
	if len(raw) != 1 {
		return Value{}, fmt.Errorf("%w for %s: needs exactly one value", ErrInvalidValue, name)
	}

	return convertOne(param, raw[0])
}

func (p *Parser) coerceMultiple(param *Param, name string, raw []string) (Value, error) {
	if len(raw) == 0 {
		return Value{}, fmt.Errorf("%w for %s: needs at least one value", ErrInvalidValue, name)
	}

	if param.Convert == nil {
		return StringsValue(raw), nil
	}

	values := make([]Value, len(raw))

	for i, r := range raw {
		value, err := convertOne(param, r)
		if err != nil {
			return Value{}, err
		}

		values[i] = value
	}

	return TupleValue(values...), nil
}
