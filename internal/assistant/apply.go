package assistant

import (
	"errors"

	"game-studio/internal/document"
	"game-studio/internal/instance"
	"game-studio/internal/logger"
)

var ErrNoObjectSelected = errors.New("select an object to apply the texture to")

// Announce logs the start of a request.
func Announce(console *logger.Logger, kind Kind, prompt string) {
	console.Log("AI Assistant: Generating %s for prompt %q...", kind, prompt)
}

// Report logs the outcome of r. Failures are logged at error level and never touch the
// document.
func Report(console *logger.Logger, r Result) {
	if r.Err != nil {
		console.Error("AI Assistant Error: %s", r.Err.Error())
		return
	}
	console.Log("AI Assistant: %s generated successfully.", r.Kind)
}

// InsertCode replaces the active script with generated code.
func InsertCode(doc *document.Document, code string) error {
	if err := doc.SetActiveContent(code); err != nil {
		return err
	}
	doc.Console().Log("AI code inserted into current script.")
	return nil
}

// CreateScript stores generated code as a new Script under ServerScriptService.
func CreateScript(doc *document.Document, code string) (*instance.Instance, error) {
	return doc.CreateScript(instance.Script, code)
}

// ApplyTexture puts a generated texture on the selected scene object.
func ApplyTexture(doc *document.Document, ref string) error {
	id := doc.Selection().Object
	if id == "" {
		return ErrNoObjectSelected
	}
	if err := doc.ApplyTexture(id, ref); err != nil {
		return err
	}
	o, _ := doc.Object(id)
	doc.Console().Log("Texture applied to %s", o.Name)
	return nil
}
