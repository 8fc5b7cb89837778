package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := executeCommand("completion", shell)
			require.NoError(t, err)
			assert.Contains(t, stdout, "mlrun")
		})
	}
}

func TestCompletionCommand_UnknownShell(t *testing.T) {
	_, _, err := executeCommand("completion", "tcsh")
	require.Error(t, err)
}

func TestCompletionCommand_RequiresShell(t *testing.T) {
	_, _, err := executeCommand("completion")
	require.Error(t, err)
}
