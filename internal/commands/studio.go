package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"game-studio/internal/assistant"
	"game-studio/internal/document"
	"game-studio/internal/download"
	"game-studio/internal/hierarchy"
	"game-studio/internal/instance"
	"game-studio/internal/project"
	"game-studio/internal/templates"
	"game-studio/internal/texture"
)

var (
	ErrNoResult  = errors.New("no generated content; run an ai prompt first")
	ErrNoAI      = errors.New("AI assistant is not available")
	errWrongArgs = errors.New("wrong number of arguments")
)

// Studio binds the console commands to an editing session. Handle must be called on the
// session's event loop.
type Studio struct {
	ctx     context.Context
	session *project.Session
	ai      *assistant.Service
	post    func(func())
	out     io.Writer
	reg     *Registry
	result  *assistant.Result

	// resultDoc is the document result was generated for.
	resultDoc *document.Document
}

// NewStudio registers every command. ai may be nil. post hands AI results back to the event
// loop.
func NewStudio(ctx context.Context, session *project.Session, ai *assistant.Service, post func(func()), out io.Writer) *Studio {
	s := &Studio{ctx: ctx, session: session, ai: ai, post: post, out: out, reg: NewRegistry()}
	s.register()
	return s
}

// Handle runs one terminal line. Lines starting with "cmd " are commands; anything else is
// sent to the AI code generator as a prompt.
func (s *Studio) Handle(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	args, ok := Parse(line)
	if !ok {
		return s.generate(assistant.Code, line)
	}
	if len(args) == 0 {
		s.reg.Help(s.out)
		return nil
	}
	return s.reg.Execute(args)
}

func (s *Studio) doc() (*document.Document, error) {
	d := s.session.Doc()
	if d == nil {
		return nil, project.ErrNoProject
	}
	return d, nil
}

func exactly(n int, run func(args []string) error) Setup {
	return func(*flag.FlagSet) func([]string) error {
		return func(args []string) error {
			if len(args) != n {
				return errWrongArgs
			}
			return run(args)
		}
	}
}

func (s *Studio) register() {
	r := s.reg
	r.Register("help", "help", exactly(0, func([]string) error {
		r.Help(s.out)
		return nil
	}))
	r.Register("templates", "templates", exactly(0, func([]string) error {
		for _, t := range templates.Names() {
			fmt.Fprintf(s.out, "%-8s %s: %s\n", t.ID, t.Name, t.Description)
		}
		return nil
	}))
	r.Register("new", "new [template]", func(*flag.FlagSet) func([]string) error {
		return func(args []string) error {
			id := templates.Default
			if len(args) > 0 {
				id = args[0]
			}
			return s.session.Open(id)
		}
	})
	r.Register("menu", "menu", exactly(0, func([]string) error {
		s.session.ReturnToMenu()
		s.result, s.resultDoc = nil, nil
		return nil
	}))
	r.Register("save", "save", exactly(0, func([]string) error {
		started, err := s.session.Save()
		if err != nil {
			return err
		}
		if !started {
			fmt.Fprintf(s.out, "nothing to save (%s)\n", s.session.Status())
		}
		return nil
	}))
	r.Register("status", "status", exactly(0, s.status))
	r.Register("tree", "tree [-q term]", func(fs *flag.FlagSet) func([]string) error {
		q := fs.String("q", "", "only show names containing term")
		return func([]string) error { return s.tree(*q) }
	})
	r.Register("options", "options <parentId>", exactly(1, func(args []string) error {
		var names []string
		for _, k := range templates.AddOptions(args[0]) {
			names = append(names, k.String())
		}
		fmt.Fprintln(s.out, strings.Join(names, " "))
		return nil
	}))
	r.Register("add", "add -parent <id> -kind <Kind> [-name <name>]", func(fs *flag.FlagSet) func([]string) error {
		parent := fs.String("parent", templates.Workspace, "parent id")
		kindName := fs.String("kind", "", "instance kind")
		name := fs.String("name", "", "instance name")
		return func([]string) error { return s.add(*parent, *kindName, *name) }
	})
	r.Register("delete", "delete <id>", exactly(1, func(args []string) error {
		d, err := s.doc()
		if err != nil {
			return err
		}
		return d.DeleteInstance(args[0])
	}))
	r.Register("rename", "rename <id> <name>", func(*flag.FlagSet) func([]string) error {
		return func(args []string) error {
			if len(args) < 2 {
				return errWrongArgs
			}
			d, err := s.doc()
			if err != nil {
				return err
			}
			return d.RenameInstance(args[0], strings.Join(args[1:], " "))
		}
	})
	r.Register("reparent", "reparent <id> <newParentId>", exactly(2, func(args []string) error {
		d, err := s.doc()
		if err != nil {
			return err
		}
		return d.MoveInstance(args[0], args[1])
	}))
	r.Register("select", "select <id>", exactly(1, func(args []string) error {
		d, err := s.doc()
		if err != nil {
			return err
		}
		return d.SelectNode(args[0])
	}))
	r.Register("click", "click <objectId|none>", exactly(1, func(args []string) error {
		d, err := s.doc()
		if err != nil {
			return err
		}
		id := args[0]
		if id == "none" {
			id = ""
		}
		return d.SelectObject(id)
	}))
	r.Register("set", "set <id> <value>", func(*flag.FlagSet) func([]string) error {
		return func(args []string) error {
			if len(args) < 2 {
				return errWrongArgs
			}
			return s.set(args[0], strings.Join(args[1:], " "))
		}
	})
	r.Register("move", "move <objectId> <x> <y> <z>", exactly(4, s.move))
	r.Register("texture", "texture <objectId> <file|url|none>", exactly(2, s.texture))
	r.Register("check", "check", exactly(0, func([]string) error {
		d, err := s.doc()
		if err != nil {
			return err
		}
		if err := d.Check(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "document consistent")
		return nil
	}))
	r.Register("logs", "logs [-since n]", func(fs *flag.FlagSet) func([]string) error {
		since := fs.Int("since", 0, "skip the first n entries")
		return func([]string) error {
			d, err := s.doc()
			if err != nil {
				return err
			}
			for _, e := range d.Console().Since(*since) {
				fmt.Fprintln(s.out, e.String())
			}
			return nil
		}
	})
	r.Register("clear", "clear", exactly(0, func([]string) error {
		d, err := s.doc()
		if err != nil {
			return err
		}
		d.Console().Clear()
		return nil
	}))
	r.Register("ai", "ai [-kind code|texture] <prompt>", func(fs *flag.FlagSet) func([]string) error {
		kindName := fs.String("kind", string(assistant.Code), "code or texture")
		return func(args []string) error {
			kind, err := assistant.ParseKind(*kindName)
			if err != nil {
				return err
			}
			return s.generate(kind, strings.Join(args, " "))
		}
	})
	r.Register("retry", "retry [-kind code|texture]", func(fs *flag.FlagSet) func([]string) error {
		kindName := fs.String("kind", string(assistant.Code), "code or texture")
		return func([]string) error {
			kind, err := assistant.ParseKind(*kindName)
			if err != nil {
				return err
			}
			return s.retry(kind)
		}
	})
	r.Register("insert", "insert", exactly(0, func([]string) error {
		return s.useResult(assistant.Code, func(d *document.Document, content string) error {
			return assistant.InsertCode(d, content)
		})
	}))
	r.Register("create", "create", exactly(0, func([]string) error {
		return s.useResult(assistant.Code, func(d *document.Document, content string) error {
			_, err := assistant.CreateScript(d, content)
			return err
		})
	}))
	r.Register("apply", "apply", exactly(0, func([]string) error {
		return s.useResult(assistant.Texture, func(d *document.Document, content string) error {
			return assistant.ApplyTexture(d, content)
		})
	}))
}

func (s *Studio) status([]string) error {
	fmt.Fprintf(s.out, "state: %s\n", s.session.State())
	d := s.session.Doc()
	if d == nil {
		return nil
	}
	sel := d.Selection()
	fmt.Fprintf(s.out, "save: %s\n", s.session.Status())
	fmt.Fprintf(s.out, "instances: %d, scene objects: %d\n", hierarchy.Len(d.Files()), len(d.Objects()))
	fmt.Fprintf(s.out, "selected: %s, object: %s, script: %s\n", orNone(sel.Hierarchy), orNone(sel.Object), orNone(sel.ActiveScript))
	return nil
}

func orNone(id string) string {
	if id == "" {
		return "none"
	}
	return id
}

func (s *Studio) tree(q string) error {
	d, err := s.doc()
	if err != nil {
		return err
	}
	sel := d.Selection()
	files := hierarchy.DisplayOrder(hierarchy.Search(d.Files(), q), templates.SystemFolderIDs())
	hierarchy.Walk(files, func(n *instance.Instance, depth int) bool {
		mark := " "
		if n.ID == sel.Hierarchy {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s%s%s [%s] %s\n", mark, strings.Repeat("  ", depth), n.Name, n.Kind, n.ID)
		return true
	})
	return nil
}

func (s *Studio) add(parent, kindName, name string) error {
	d, err := s.doc()
	if err != nil {
		return err
	}
	kind, err := instance.ParseKind(kindName)
	if err != nil {
		return err
	}
	n, err := d.AddInstance(parent, kind, "")
	if err != nil {
		return err
	}
	if name != "" {
		if err := d.RenameInstance(n.ID, name); err != nil {
			return err
		}
	}
	fmt.Fprintln(s.out, n.ID)
	return nil
}

func (s *Studio) set(id, raw string) error {
	d, err := s.doc()
	if err != nil {
		return err
	}
	n, ok := d.Find(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, hierarchy.ErrNotFound)
	}
	switch {
	case instance.IsValue(n.Kind):
		if n.Kind == instance.NumberValue {
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return fmt.Errorf("%s: %w", id, hierarchy.ErrTypeMismatch)
			}
		}
		return d.SetValue(id, instance.ParseValue(n.Kind, raw))
	case instance.IsScript(n.Kind):
		return d.SetContent(id, strings.ReplaceAll(raw, `\n`, "\n"))
	}
	return fmt.Errorf("%s (%s): %w", id, n.Kind, hierarchy.ErrWrongKind)
}

func (s *Studio) move(args []string) error {
	d, err := s.doc()
	if err != nil {
		return err
	}
	o, ok := d.Object(args[0])
	if !ok {
		return fmt.Errorf("%s: not a scene object", args[0])
	}
	var xyz [3]float32
	for i, a := range args[1:] {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return err
		}
		xyz[i] = float32(v)
	}
	o.Transform.Position.X, o.Transform.Position.Y, o.Transform.Position.Z = xyz[0], xyz[1], xyz[2]
	return d.UpdateObject(o)
}

func (s *Studio) texture(args []string) error {
	d, err := s.doc()
	if err != nil {
		return err
	}
	id, ref := args[0], args[1]
	if ref == "none" {
		return d.ClearTexture(id)
	}
	var url string
	if download.IsURL(ref) {
		data, _, ferr := download.Fetch(s.ctx, ref)
		if ferr != nil {
			return ferr
		}
		url, err = texture.Normalize(data)
	} else {
		url, err = texture.Load(ref)
	}
	if err != nil {
		return err
	}
	if err := d.ApplyTexture(id, url); err != nil {
		return err
	}
	o, _ := d.Object(id)
	d.Console().Log("Texture applied to %s", o.Name)
	return nil
}

func (s *Studio) generate(kind assistant.Kind, prompt string) error {
	d, err := s.doc()
	if err != nil {
		return err
	}
	if s.ai == nil {
		return ErrNoAI
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return assistant.ErrEmptyPrompt
	}
	assistant.Announce(d.Console(), kind, prompt)
	s.ai.Start(s.ctx, kind, prompt, s.deliverTo(d))
	return nil
}

func (s *Studio) retry(kind assistant.Kind) error {
	d, err := s.doc()
	if err != nil {
		return err
	}
	if s.ai == nil {
		return ErrNoAI
	}
	prompt, ok := s.ai.LastPrompt(kind)
	if !ok {
		return assistant.ErrNoPrompt
	}
	assistant.Announce(d.Console(), kind, prompt)
	return s.ai.Retry(s.ctx, kind, s.deliverTo(d))
}

// deliverTo returns the callback run on the assistant goroutine for a request made
// while d was open.
func (s *Studio) deliverTo(d *document.Document) func(assistant.Result) {
	return func(r assistant.Result) {
		s.post(func() { s.receive(d, r) })
	}
}

// receive drops results whose project has been closed or replaced since the request.
func (s *Studio) receive(d *document.Document, r assistant.Result) {
	if s.session.Doc() != d {
		return
	}
	assistant.Report(d.Console(), r)
	if r.Err != nil {
		return
	}
	s.result, s.resultDoc = &r, d
	if r.Kind == assistant.Code {
		fmt.Fprintln(s.out, r.Content)
		fmt.Fprintln(s.out, "cmd insert: replace the current script, cmd create: new Script")
		return
	}
	fmt.Fprintln(s.out, "texture ready; cmd apply: put it on the selected object")
}

func (s *Studio) useResult(kind assistant.Kind, fn func(*document.Document, string) error) error {
	d, err := s.doc()
	if err != nil {
		return err
	}
	if s.result == nil || s.resultDoc != d || s.result.Kind != kind {
		return ErrNoResult
	}
	return fn(d, s.result.Content)
}
