package cli

import (
	"fmt"
	"strings"
)

// printHelp renders help for the first subcommand named in the tokens, or
// general help when none is. Help is a side channel: it bypasses resolution
// entirely.
func (p *Parser) printHelp(tokens []string) {
	for _, token := range tokens {
		if cmd, ok := p.subcommands[token]; ok {
			p.printCommandHelp(cmd)

			return
		}
	}

	p.printGeneralHelp()
}

// printGeneralHelp lists the registered subcommands.
func (p *Parser) printGeneralHelp() {
	styles := DefaultStyles()

	fmt.Fprintf(p.out, "%s command options...\n\n", p.name)
	fmt.Fprintf(p.out, "%s\n\n", p.description)
	fmt.Fprintf(p.out, "%s\n", styles.Header.Render("Subcommands:"))

	for _, name := range p.order {
		fmt.Fprintf(p.out, "\t%s\t%s\n", styles.Command.Render(name), p.subcommands[name].Help)
	}
}

// printCommandHelp renders the usage line, parameter list, and flag list for
// one subcommand, including the root's shared flags.
func (p *Parser) printCommandHelp(cmd *Command) {
	styles := DefaultStyles()
	schemas := append(append([]Schema{}, cmd.Params...), p.root.Params...)

	fmt.Fprintf(p.out, "%s %s%s%s\n\n",
		p.name, cmd.Name, positionalUsage(schemas, styles), flagUsage(schemas, styles))
	fmt.Fprintf(p.out, "%s\n\n", cmd.Help)

	positionals := collectParams(schemas, false)
	if len(positionals) > 0 {
		fmt.Fprintf(p.out, "%s\n", styles.Header.Render("Parameters:"))

		for _, param := range positionals {
			fmt.Fprint(p.out, paramHelp(param, styles))
		}

		fmt.Fprintln(p.out)
	}

	flags := collectParams(schemas, true)
	if len(flags) > 0 {
		fmt.Fprintf(p.out, "%s\n", styles.Header.Render("Flags:"))

		for _, param := range flags {
			fmt.Fprint(p.out, paramHelp(param, styles))
		}
	}
}

// collectParams flattens groups, keeping declaration order, and filters to
// flags or positionals.
func collectParams(schemas []Schema, flags bool) []Param {
	var params []Param

	appendParam := func(param Param) {
		if isFlagName(param.Name) == flags {
			params = append(params, param)
		}
	}

	for _, schema := range schemas {
		switch s := schema.(type) {
		case Param:
			appendParam(s)
		case Group:
			for _, param := range s.Params {
				appendParam(param)
			}
		}
	}

	return params
}

// positionalUsage renders the ordered positional display names for the usage
// line.
func positionalUsage(schemas []Schema, styles Styles) string {
	var b strings.Builder

	for _, param := range collectParams(schemas, false) {
		b.WriteString(" ")
		b.WriteString(styles.Placeholder.Render(displayName(param)))
	}

	return b.String()
}

// flagUsage renders grouped flag alternatives for the usage line:
// "[a | b]" for mutually-exclusive groups, "{a | b}" otherwise.
func flagUsage(schemas []Schema, styles Styles) string {
	var b strings.Builder

	renderGroup := func(params []Param, exclusive bool) {
		var names []string

		for _, param := range params {
			if !isFlagName(param.Name) {
				continue
			}

			name := param.Name
			if param.Shorthand != "" {
				name = param.Shorthand
			}

			names = append(names, styles.Flag.Render(name))
		}

		if len(names) == 0 {
			return
		}

		opener, closer := "{", "}"
		if exclusive {
			opener, closer = "[", "]"
		}

		b.WriteString(" " + opener + strings.Join(names, " | ") + closer)
	}

	for _, schema := range schemas {
		switch s := schema.(type) {
		case Param:
			renderGroup([]Param{s}, false)
		case Group:
			renderGroup(s.Params, s.MutuallyExclusive)
		}
	}

	return b.String()
}

// paramHelp renders one detail line: display name, shorthand, help text, and
// the declared default when present.
func paramHelp(param Param, styles Styles) string {
	name := styles.Flag.Render(displayName(param))
	if param.Shorthand != "" {
		name += ", " + styles.Flag.Render(param.Shorthand)
	}

	line := fmt.Sprintf("\t%s\t%s", name, param.Help)

	if len(param.Choices) != 0 {
		line += fmt.Sprintf(" (one of: %s)", strings.Join(param.Choices, ", "))
	}

	if param.HasDefault {
		line += fmt.Sprintf("\n\t\t(%s)", param.Default)
	}

	return line + "\n"
}

// displayName returns the name rendered in help output, with "..." marking
// Multiple-kind parameters.
func displayName(param Param) string {
	name := param.Name
	if param.DisplayName != "" {
		name = param.DisplayName
	}

	if param.Kind == KindMultiple {
		name += "..."
	}

	return name
}
