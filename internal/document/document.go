// Package document holds the project document of an editing session: the instance forest,
// the scene object list, the selection pointers and the console. Every operation keeps the
// forest and the scene list consistent in a single step.
package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"game-studio/internal/hierarchy"
	"game-studio/internal/instance"
	"game-studio/internal/logger"
	"game-studio/internal/scene"
	"game-studio/internal/selection"
	"game-studio/internal/templates"
)

var (
	ErrBlankName      = errors.New("name must not be blank")
	ErrNoActiveScript = errors.New("no active script")
	ErrNotScript      = errors.New("not a script")
)

// Document is the single mutable copy of a project. It is not safe for concurrent use; the
// session serializes access through its event loop.
type Document struct {
	files    hierarchy.Forest
	objects  *scene.List
	sel      selection.State
	console  *logger.Logger
	onChange func()
}

// New builds a document from a template seed. Seed logs are copied into console.
func New(seed templates.Seed, console *logger.Logger) (*Document, error) {
	objects, err := scene.NewList(seed.Objects...)
	if err != nil {
		return nil, err
	}
	d := &Document{
		files:   seed.Files,
		objects: objects,
		console: console,
		sel: selection.State{
			Hierarchy:    seed.SelectedID,
			ActiveScript: seed.ActiveScriptID,
		},
	}
	if objects.Has(seed.SelectedID) {
		d.sel.Object = seed.SelectedID
	}
	console.Seed(seed.Logs)
	if err := d.Check(); err != nil {
		return nil, err
	}
	return d, nil
}

// OnChange registers fn to run once after every applied mutation.
func (d *Document) OnChange(fn func()) {
	d.onChange = fn
}

func (d *Document) changed() {
	if d.onChange != nil {
		d.onChange()
	}
}

// Files returns the current forest. Nodes are shared with the document and must be
// treated as read-only.
func (d *Document) Files() hierarchy.Forest {
	return d.files
}

// Objects returns a copy of the scene objects in order.
func (d *Document) Objects() []scene.Object {
	return d.objects.All()
}

// Object returns a copy of the scene object with id.
func (d *Document) Object(id string) (scene.Object, bool) {
	return d.objects.Find(id)
}

// Find returns the instance with id.
func (d *Document) Find(id string) (*instance.Instance, bool) {
	return hierarchy.Find(d.files, id)
}

// Selection returns the selection pointers.
func (d *Document) Selection() selection.State {
	return d.sel
}

// Console returns the project console.
func (d *Document) Console() *logger.Logger {
	return d.console
}

// AddInstance appends a new node of kind under parentID. Physical kinds get their scene
// object in the same step. Scripts receive content, or a placeholder when content is
// empty, and become the active script.
func (d *Document) AddInstance(parentID string, kind instance.Kind, content string) (*instance.Instance, error) {
	return d.add(parentID, instance.New(kind, ""), content)
}

// AddNamedInstance is AddInstance with an explicit name. A blank name is rejected before
// anything is inserted.
func (d *Document) AddNamedInstance(parentID string, kind instance.Kind, name, content string) (*instance.Instance, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	return d.add(parentID, instance.New(kind, name), content)
}

func (d *Document) add(parentID string, n *instance.Instance, content string) (*instance.Instance, error) {
	if instance.IsScript(n.Kind) {
		if content == "" {
			content = fmt.Sprintf("-- New %s\n", n.Kind)
		}
		n.Payload = instance.Source{Content: content}
	}
	files, err := hierarchy.Insert(d.files, parentID, n)
	if err != nil {
		return nil, err
	}
	if instance.IsPhysical(n.Kind) {
		if err := d.objects.Add(scene.NewObject(n.ID, n.Name, n.Kind)); err != nil {
			return nil, err
		}
	}
	d.files = files
	if instance.IsScript(n.Kind) {
		d.sel.SetActiveScript(n.ID)
	}
	d.changed()
	return n, nil
}

// DeleteInstance removes id and its subtree together with every scene object and selection
// pointer inside it. A protected target is refused with one warning on the console.
func (d *Document) DeleteInstance(id string) error {
	files, removed, err := hierarchy.Delete(d.files, id)
	if err != nil {
		d.warnRefused(err)
		return err
	}
	ids := hierarchy.IDs(removed)
	gone := make(map[string]bool, len(ids))
	for _, rid := range ids {
		gone[rid] = true
	}
	d.files = files
	d.objects.Remove(ids...)
	d.sel.Forget(gone)
	d.changed()
	return nil
}

// RenameInstance renames id and the paired scene object.
func (d *Document) RenameInstance(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	files, err := hierarchy.Rename(d.files, id, name)
	if err != nil {
		d.warnRefused(err)
		return err
	}
	d.files = files
	d.objects.Rename(id, name)
	d.changed()
	return nil
}

// MoveInstance reparents id under newParentID. Scene objects are unaffected.
func (d *Document) MoveInstance(id, newParentID string) error {
	files, err := hierarchy.Move(d.files, id, newParentID)
	if err != nil {
		d.warnRefused(err)
		return err
	}
	d.files = files
	d.changed()
	return nil
}

// Edit is a set of field changes to one instance. Nil fields are left alone. Value is raw
// property-panel text, parsed by the node's kind.
type Edit struct {
	Name    *string
	Parent  *string
	Value   *string
	Content *string
	Gui     *instance.GuiProps
}

// Apply makes every change in e to id, or none of them.
func (d *Document) Apply(id string, e Edit) error {
	files := d.files
	var err error
	var name string
	if e.Name != nil {
		if name = strings.TrimSpace(*e.Name); name == "" {
			return ErrBlankName
		}
		if files, err = hierarchy.Rename(files, id, name); err != nil {
			d.warnRefused(err)
			return err
		}
	}
	if e.Parent != nil {
		if files, err = hierarchy.Move(files, id, *e.Parent); err != nil {
			d.warnRefused(err)
			return err
		}
	}
	if e.Value != nil {
		v, err := parseValue(files, id, *e.Value)
		if err != nil {
			return err
		}
		if files, err = hierarchy.SetValue(files, id, v); err != nil {
			return err
		}
	}
	if e.Content != nil {
		if files, err = hierarchy.SetContent(files, id, *e.Content); err != nil {
			return err
		}
	}
	if e.Gui != nil {
		if files, err = hierarchy.SetGui(files, id, *e.Gui); err != nil {
			return err
		}
	}
	d.files = files
	if e.Name != nil {
		d.objects.Rename(id, name)
	}
	d.changed()
	return nil
}

// parseValue reads raw as the value of holder id. Unlike the property panel it rejects
// non-numeric text for a NumberValue.
func parseValue(f hierarchy.Forest, id, raw string) (instance.Value, error) {
	n, ok := hierarchy.Find(f, id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, hierarchy.ErrNotFound)
	}
	if n.Kind == instance.NumberValue {
		raw = strings.TrimSpace(raw)
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("%s: %w", id, hierarchy.ErrTypeMismatch)
		}
	}
	return instance.ParseValue(n.Kind, raw), nil
}

func (d *Document) warnRefused(err error) {
	var refused *hierarchy.RefusedError
	if errors.As(err, &refused) {
		d.console.Append(logger.LevelWarn, refused.Error())
	}
}

// SetValue writes v into the value holder id.
func (d *Document) SetValue(id string, v instance.Value) error {
	files, err := hierarchy.SetValue(d.files, id, v)
	if err != nil {
		return err
	}
	d.files = files
	d.changed()
	return nil
}

// SetContent replaces the source of script id.
func (d *Document) SetContent(id, content string) error {
	files, err := hierarchy.SetContent(d.files, id, content)
	if err != nil {
		return err
	}
	d.files = files
	d.changed()
	return nil
}

// ActiveContent returns the source of the active script.
func (d *Document) ActiveContent() (string, error) {
	if d.sel.ActiveScript == "" {
		return "", ErrNoActiveScript
	}
	n, ok := d.Find(d.sel.ActiveScript)
	if !ok {
		return "", fmt.Errorf("%s: %w", d.sel.ActiveScript, hierarchy.ErrNotFound)
	}
	content, _ := n.Content()
	return content, nil
}

// SetActiveContent replaces the source of the active script, as the code editor does on
// every keystroke.
func (d *Document) SetActiveContent(content string) error {
	if d.sel.ActiveScript == "" {
		return ErrNoActiveScript
	}
	return d.SetContent(d.sel.ActiveScript, content)
}

// SetGui replaces the layout properties of a GUI node.
func (d *Document) SetGui(id string, props instance.GuiProps) error {
	files, err := hierarchy.SetGui(d.files, id, props)
	if err != nil {
		return err
	}
	d.files = files
	d.changed()
	return nil
}

// UpdateObject applies a drag or property edit. Only object-owned fields are taken from o.
func (d *Document) UpdateObject(o scene.Object) error {
	if err := d.objects.Update(o); err != nil {
		return err
	}
	d.changed()
	return nil
}

// ApplyTexture sets the texture reference of object id.
func (d *Document) ApplyTexture(id, ref string) error {
	o, ok := d.objects.Find(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, scene.ErrNotFound)
	}
	o.Texture = ref
	return d.UpdateObject(o)
}

// ClearTexture removes the texture of object id.
func (d *Document) ClearTexture(id string) error {
	return d.ApplyTexture(id, "")
}

// CreateScript adds a script holding code under ServerScriptService.
func (d *Document) CreateScript(kind instance.Kind, code string) (*instance.Instance, error) {
	if !instance.IsScript(kind) {
		return nil, fmt.Errorf("%s: %w", kind, ErrNotScript)
	}
	d.console.Log("AI Assistant: Creating new %s...", kind)
	return d.AddInstance(templates.ServerScriptService, kind, code)
}

// SelectNode applies a click on the explorer node id.
func (d *Document) SelectNode(id string) error {
	n, ok := d.Find(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, hierarchy.ErrNotFound)
	}
	d.sel.SelectNode(id, n.Kind, d.objects.Has(id))
	d.changed()
	return nil
}

// SelectObject applies a click in the scene view. An empty id deselects.
func (d *Document) SelectObject(id string) error {
	if id != "" && !d.objects.Has(id) {
		return fmt.Errorf("%s: %w", id, scene.ErrNotFound)
	}
	d.sel.SelectObject(id)
	d.changed()
	return nil
}

// SetActiveScript binds script id to the code editor.
func (d *Document) SetActiveScript(id string) error {
	n, ok := d.Find(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, hierarchy.ErrNotFound)
	}
	if !instance.IsScript(n.Kind) {
		return fmt.Errorf("%s: %w", id, ErrNotScript)
	}
	d.sel.SetActiveScript(id)
	d.changed()
	return nil
}
