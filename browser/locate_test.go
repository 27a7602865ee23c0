package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClickByRoleScriptEmbedsArguments(t *testing.T) {
	script := clickByRoleScript("link", `Sign "in"`)

	assert.Contains(t, script, `("link", "Sign \"in\"")`)
	assert.Contains(t, script, "a[href]")
	assert.Contains(t, script, "const visible")
}

func TestReadOnlyInputScriptTargetsFirstReadOnlyInput(t *testing.T) {
	script := readOnlyInputScript()

	assert.Contains(t, script, "document.querySelector('input[readonly]')")
	assert.Contains(t, script, "status: 'found'")
}

func TestHasTextScript(t *testing.T) {
	assert.Contains(t, hasTextScript("Project URL"), `("Project URL")`)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()

	assert.Equal(t, 1280, o.WindowWidth)
	assert.Equal(t, 900, o.WindowHeight)
	assert.Positive(t, o.NavigationTimeout)
	assert.Positive(t, o.ActionTimeout)
	assert.Equal(t, 1, o.ActionBurst)
}
