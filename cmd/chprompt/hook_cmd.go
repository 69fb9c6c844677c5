package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbeck/chprompt/internal/output"
)

// bashHook wires the segment into PS1 via PROMPT_COMMAND.
// CHPROMPT_SESSION scopes the cache slot to this shell; without it every
// redraw would land in a cache keyed by a changing parent PID.
const bashHook = `# chprompt shell integration
# Install: eval "$(chprompt hook bash)"

export CHPROMPT_SESSION=$$
__chprompt_redraw() {
  CHPROMPT_SEGMENT=$(chprompt prompt)
}
PROMPT_COMMAND="__chprompt_redraw${PROMPT_COMMAND:+; $PROMPT_COMMAND}"
PS1='${CHPROMPT_SEGMENT}'"$PS1"
`

const zshHook = `# chprompt shell integration
# Install: eval "$(chprompt hook zsh)"

export CHPROMPT_SESSION=$$
__chprompt_redraw() {
  CHPROMPT_SEGMENT=$(chprompt prompt)
}
typeset -ga precmd_functions
precmd_functions+=(__chprompt_redraw)
setopt PROMPT_SUBST
PROMPT='${CHPROMPT_SEGMENT}'"$PROMPT"
`

func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "hook <shell>",
		Short:     "Print the shell integration snippet",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh"},
		Long: `Print the snippet that renders the segment on every prompt redraw.

Add to your shell config:

  eval "$(chprompt hook bash)"   # ~/.bashrc
  eval "$(chprompt hook zsh)"    # ~/.zshrc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			switch args[0] {
			case "bash":
				out.Print(bashHook)
			case "zsh":
				out.Print(zshHook)
			default:
				return fmt.Errorf("unsupported shell %q (supported: bash, zsh)", args[0])
			}
			return nil
		},
	}

	return cmd
}
