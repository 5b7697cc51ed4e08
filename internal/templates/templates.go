// Package templates builds the initial project document for each starter template.
// Templates are YAML files embedded in the binary; the fixed system folders are built in
// code so every template shares the same top-level shape.
package templates

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"game-studio/internal/hierarchy"
	"game-studio/internal/instance"
	"game-studio/internal/logger"
	"game-studio/internal/scene"
)

// Default is used for unknown template ids.
const Default = "blank"

//go:embed data/*.yaml
var dataFS embed.FS

// Seed is everything a freshly opened project starts with.
type Seed struct {
	Files          hierarchy.Forest
	Objects        []scene.Object
	Logs           []logger.Entry
	ActiveScriptID string
	SelectedID     string
}

// Info describes a template for the main menu.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type definition struct {
	Name         string               `yaml:"name"`
	Description  string               `yaml:"description"`
	ActiveScript string               `yaml:"active_script"`
	Selected     string               `yaml:"selected"`
	Folders      map[string][]nodeDef `yaml:"folders"`
	Objects      []objectDef          `yaml:"objects"`
	Logs         []logger.Entry       `yaml:"logs"`
}

type nodeDef struct {
	ID       string             `yaml:"id"`
	Name     string             `yaml:"name"`
	Type     string             `yaml:"type"`
	Content  string             `yaml:"content"`
	Value    string             `yaml:"value"`
	Gui      *instance.GuiProps `yaml:"gui"`
	Children []nodeDef          `yaml:"children"`
}

type objectDef struct {
	ID        string          `yaml:"id"`
	Type      string          `yaml:"type"`
	Color     string          `yaml:"color"`
	Texture   string          `yaml:"texture"`
	Transform scene.Transform `yaml:"transform"`
	Light     *scene.Light    `yaml:"light"`
	Camera    *scene.Camera   `yaml:"camera"`
}

var (
	loadOnce    sync.Once
	definitions map[string]*definition
)

func load() map[string]*definition {
	loadOnce.Do(func() {
		entries, err := dataFS.ReadDir("data")
		if err != nil {
			panic(fmt.Sprintf("templates: %v", err))
		}
		definitions = make(map[string]*definition)
		for _, e := range entries {
			data, err := dataFS.ReadFile(path.Join("data", e.Name()))
			if err != nil {
				panic(fmt.Sprintf("templates: %v", err))
			}
			var def definition
			if err := yaml.Unmarshal(data, &def); err != nil {
				panic(fmt.Sprintf("templates: parsing %s: %v", e.Name(), err))
			}
			definitions[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = &def
		}
		for id, def := range definitions {
			// build once up front so a malformed template fails at first use, not mid-session
			if _, err := build(def); err != nil {
				panic(fmt.Sprintf("templates: %s: %v", id, err))
			}
		}
	})
	return definitions
}

// Names lists the available templates sorted by id.
func Names() []Info {
	defs := load()
	out := make([]Info, 0, len(defs))
	for id, def := range defs {
		out = append(out, Info{ID: id, Name: def.Name, Description: def.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Instantiate returns a fresh seed for id. Unknown ids fall back to Default. Every call
// returns new nodes, so seeds never share state.
func Instantiate(id string) Seed {
	defs := load()
	def, ok := defs[id]
	if !ok {
		def = defs[Default]
	}
	seed, err := build(def)
	if err != nil {
		panic(fmt.Sprintf("templates: %s: %v", id, err))
	}
	return seed
}

func build(def *definition) (Seed, error) {
	for id := range def.Folders {
		if !isSystemFolder(id) {
			return Seed{}, fmt.Errorf("unknown system folder %q", id)
		}
	}
	files := make(hierarchy.Forest, 0, len(systemFolders))
	for _, sf := range systemFolders {
		n, err := buildSystemFolder(sf, def.Folders)
		if err != nil {
			return Seed{}, err
		}
		files = append(files, n)
	}
	if err := hierarchy.Check(files); err != nil {
		return Seed{}, err
	}

	objects := make([]scene.Object, 0, len(def.Objects))
	for _, od := range def.Objects {
		o, err := buildObject(files, od)
		if err != nil {
			return Seed{}, err
		}
		objects = append(objects, o)
	}
	if _, err := scene.NewList(objects...); err != nil {
		return Seed{}, err
	}
	for _, id := range []string{def.ActiveScript, def.Selected} {
		if id == "" {
			continue
		}
		if _, ok := hierarchy.Find(files, id); !ok {
			return Seed{}, fmt.Errorf("seed pointer %q: %w", id, hierarchy.ErrNotFound)
		}
	}
	return Seed{
		Files:          files,
		Objects:        objects,
		Logs:           append([]logger.Entry(nil), def.Logs...),
		ActiveScriptID: def.ActiveScript,
		SelectedID:     def.Selected,
	}, nil
}

func buildSystemFolder(sf systemFolder, extra map[string][]nodeDef) (*instance.Instance, error) {
	var kids []*instance.Instance
	for _, sub := range sf.children {
		n, err := buildSystemFolder(sub, extra)
		if err != nil {
			return nil, err
		}
		kids = append(kids, n)
	}
	for _, nd := range extra[sf.id] {
		n, err := buildNode(nd)
		if err != nil {
			return nil, err
		}
		kids = append(kids, n)
	}
	return &instance.Instance{
		ID:      sf.id,
		Name:    sf.name,
		Kind:    instance.Folder,
		Flags:   instance.Protected,
		Payload: instance.Container{Children: kids},
	}, nil
}

func buildNode(nd nodeDef) (*instance.Instance, error) {
	kind, err := instance.ParseKind(nd.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nd.ID, err)
	}
	n := &instance.Instance{ID: nd.ID, Name: nd.Name, Kind: kind, Payload: instance.DefaultPayload(kind)}
	if n.Name == "" {
		n.Name = kind.String()
	}
	switch {
	case instance.IsScript(kind):
		n.Payload = instance.Source{Content: nd.Content}
	case instance.IsValue(kind):
		n.Payload = instance.ParseValue(kind, nd.Value)
	}
	if instance.IsGui(kind) {
		n.Gui = &instance.GuiProps{}
		if nd.Gui != nil {
			*n.Gui = *nd.Gui
		}
	}
	if len(nd.Children) > 0 {
		if !instance.IsContainer(kind) {
			return nil, fmt.Errorf("%s: %w", nd.ID, hierarchy.ErrNotContainer)
		}
		kids := make([]*instance.Instance, 0, len(nd.Children))
		for _, c := range nd.Children {
			child, err := buildNode(c)
			if err != nil {
				return nil, err
			}
			kids = append(kids, child)
		}
		n.Payload = instance.Container{Children: kids}
	}
	return n, nil
}

func buildObject(files hierarchy.Forest, od objectDef) (scene.Object, error) {
	n, ok := hierarchy.Find(files, od.ID)
	if !ok {
		return scene.Object{}, fmt.Errorf("scene object %q has no instance", od.ID)
	}
	if od.Type != n.Kind.String() {
		return scene.Object{}, fmt.Errorf("scene object %q: type %s, instance is %s", od.ID, od.Type, n.Kind)
	}
	o := scene.NewObject(n.ID, n.Name, n.Kind)
	o.Transform = od.Transform
	if od.Color != "" {
		o.Color = od.Color
	}
	o.Texture = od.Texture
	if od.Light != nil {
		o.Light = od.Light
	}
	if od.Camera != nil {
		o.Camera = od.Camera
	}
	return o, o.Validate()
}
