package cli

// runPipeline executes the two-tier pipeline: root post-processors, root
// validators, then the matched subcommand's post-processors and validators.
// Root post-processing runs first because it establishes cross-cutting state
// (the logging level) that subcommand validators rely on. A validator
// returning false stops everything; it has already reported the reason.
func (p *Parser) runPipeline(args Args) error {
	ctx := &Context{Log: p.log, Out: p.out, Args: args}

	if err := runCommandPipeline(p.root, ctx); err != nil {
		return err
	}

	if p.matched == "" {
		return nil
	}

	return runCommandPipeline(p.subcommands[p.matched], ctx)
}

func runCommandPipeline(cmd *Command, ctx *Context) error {
	for _, post := range cmd.postProcessors() {
		post(ctx)
	}

	for _, validate := range cmd.validators() {
		if !validate(ctx) {
			return ErrReported
		}
	}

	return nil
}
