package shell

import (
	"fmt"
	"io"
)

// WriteBashInit writes the bash shell integration script to the writer.
func WriteBashInit(w io.Writer) {
	fmt.Fprint(w, `# mountains shell integration
__mountains_prompt_hook() {
  eval "$(command mountains status --env 2>/dev/null)"
}

mountains_prompt_info() {
  command mountains status 2>/dev/null
}

if [[ -z "$PROMPT_COMMAND" ]]; then
  PROMPT_COMMAND="__mountains_prompt_hook"
else
  PROMPT_COMMAND="__mountains_prompt_hook;${PROMPT_COMMAND}"
fi

eval "$(command mountains completion bash 2>/dev/null)"
`)
}

// WriteZshInit writes the zsh shell integration script to the writer.
func WriteZshInit(w io.Writer) {
	fmt.Fprint(w, `# mountains shell integration
__mountains_prompt_hook() {
  eval "$(command mountains status --env 2>/dev/null)"
}

mountains_prompt_info() {
  command mountains status 2>/dev/null
}

autoload -Uz add-zsh-hook
add-zsh-hook precmd __mountains_prompt_hook

eval "$(command mountains completion zsh 2>/dev/null)"
`)
}
