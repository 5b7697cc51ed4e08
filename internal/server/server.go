// Package server exposes the editing session over a small JSON API so a browser front
// end can drive the studio. Every handler touches the session through the event loop.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"game-studio/internal/assistant"
	"game-studio/internal/document"
	"game-studio/internal/hierarchy"
	"game-studio/internal/instance"
	"game-studio/internal/logger"
	"game-studio/internal/project"
	"game-studio/internal/scene"
	"game-studio/internal/selection"
	"game-studio/internal/templates"
)

// Server is the local studio server.
type Server struct {
	session *project.Session
	loop    *project.Loop
	ai      *assistant.Service
	addr    string
}

// New creates a server for session. ai may be nil, in which case the generation endpoint
// answers 503.
func New(session *project.Session, loop *project.Loop, ai *assistant.Service, addr string) *Server {
	return &Server{
		session: session,
		loop:    loop,
		ai:      ai,
		addr:    addr,
	}
}

// Handler returns the routes of the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/templates", s.handleTemplates)
	mux.HandleFunc("GET /api/document", s.handleDocument)
	mux.HandleFunc("GET /api/tree", s.handleTree)
	mux.HandleFunc("GET /api/options/{parent}", s.handleOptions)
	mux.HandleFunc("POST /api/instances", s.handleAddInstance)
	mux.HandleFunc("PATCH /api/instances/{id}", s.handlePatchInstance)
	mux.HandleFunc("DELETE /api/instances/{id}", s.handleDeleteInstance)
	mux.HandleFunc("POST /api/select", s.handleSelect)
	mux.HandleFunc("PATCH /api/objects/{id}", s.handlePatchObject)
	mux.HandleFunc("POST /api/save", s.handleSave)
	mux.HandleFunc("POST /api/project", s.handleOpen)
	mux.HandleFunc("DELETE /api/project", s.handleClose)
	mux.HandleFunc("GET /api/logs", s.handleLogs)
	mux.HandleFunc("POST /api/ai/{kind}", s.handleGenerate)

	return mux
}

// Start launches the HTTP server and blocks until it fails.
func (s *Server) Start() error {
	log.Printf("Studio server starting on http://%s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

type snapshot struct {
	State     project.State        `json:"state"`
	Status    project.SaveStatus   `json:"saveStatus"`
	Files     []*instance.Instance `json:"files,omitempty"`
	Objects   []scene.Object       `json:"sceneObjects,omitempty"`
	Selection *selection.State     `json:"selection,omitempty"`
	Logs      int                  `json:"logCount"`
}

func (s *Server) snapshot() snapshot {
	out := snapshot{State: s.session.State(), Status: s.session.Status()}
	d := s.session.Doc()
	if d == nil {
		return out
	}
	sel := d.Selection()
	out.Files = d.Files()
	out.Objects = d.Objects()
	out.Selection = &sel
	out.Logs = d.Console().Len()
	return out
}

// run executes fn on the loop and writes either its result or the error it returned.
func (s *Server) run(w http.ResponseWriter, r *http.Request, status int, fn func() (any, error)) {
	var (
		body any
		err  error
	)
	if lerr := s.loop.Do(r.Context(), func() { body, err = fn() }); lerr != nil {
		writeError(w, http.StatusServiceUnavailable, lerr)
		return
	}
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, status, body)
}

// withDoc is run for handlers that need an open project.
func (s *Server) withDoc(fn func(d *document.Document) (any, error)) func() (any, error) {
	return func() (any, error) {
		d := s.session.Doc()
		if d == nil {
			return nil, project.ErrNoProject
		}
		return fn(d)
	}
}

func statusOf(err error) int {
	switch {
	case hierarchy.IsRefused(err):
		return http.StatusConflict
	case errors.Is(err, project.ErrNoProject):
		return http.StatusConflict
	case errors.Is(err, hierarchy.ErrNotFound), errors.Is(err, scene.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, assistant.ErrNotConfigured):
		return http.StatusServiceUnavailable
	}
	var gen *assistant.GenerationError
	if errors.As(err, &gen) {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		v = map[string]string{"status": "ok"}
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, templates.Names())
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, http.StatusOK, func() (any, error) { return s.snapshot(), nil })
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.run(w, r, http.StatusOK, s.withDoc(func(d *document.Document) (any, error) {
		return hierarchy.DisplayOrder(hierarchy.Search(d.Files(), q), templates.SystemFolderIDs()), nil
	}))
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, templates.AddOptions(r.PathValue("parent")))
}

type addRequest struct {
	Parent  string `json:"parentId"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
}

func (s *Server) handleAddInstance(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	kind, err := instance.ParseKind(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.run(w, r, http.StatusCreated, s.withDoc(func(d *document.Document) (any, error) {
		if req.Name == "" {
			return d.AddInstance(req.Parent, kind, req.Content)
		}
		return d.AddNamedInstance(req.Parent, kind, req.Name, req.Content)
	}))
}

// patchRequest carries any subset of the editable instance fields. Value is the raw text
// typed into the property editor.
type patchRequest struct {
	Name    *string            `json:"name,omitempty"`
	Parent  *string            `json:"parentId,omitempty"`
	Value   *string            `json:"value,omitempty"`
	Content *string            `json:"content,omitempty"`
	Gui     *instance.GuiProps `json:"gui,omitempty"`
}

func (s *Server) handlePatchInstance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req patchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.run(w, r, http.StatusOK, s.withDoc(func(d *document.Document) (any, error) {
		edit := document.Edit{Name: req.Name, Parent: req.Parent, Value: req.Value, Content: req.Content, Gui: req.Gui}
		if err := d.Apply(id, edit); err != nil {
			return nil, err
		}
		n, ok := d.Find(id)
		if !ok {
			return nil, fmt.Errorf("%s: %w", id, hierarchy.ErrNotFound)
		}
		return n, nil
	}))
}

func (s *Server) handleDeleteInstance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.run(w, r, http.StatusOK, s.withDoc(func(d *document.Document) (any, error) {
		return nil, d.DeleteInstance(id)
	}))
}

type selectRequest struct {
	Node   *string `json:"hierarchyId,omitempty"`
	Object *string `json:"sceneObjectId,omitempty"`
	Script *string `json:"activeScriptId,omitempty"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.run(w, r, http.StatusOK, s.withDoc(func(d *document.Document) (any, error) {
		var err error
		switch {
		case req.Node != nil:
			err = d.SelectNode(*req.Node)
		case req.Object != nil:
			err = d.SelectObject(*req.Object)
		case req.Script != nil:
			err = d.SetActiveScript(*req.Script)
		default:
			err = errors.New("nothing to select")
		}
		if err != nil {
			return nil, err
		}
		return d.Selection(), nil
	}))
}

// objectPatch edits the object-owned fields. Name and type follow the paired instance and
// are not accepted here.
type objectPatch struct {
	Transform *scene.Transform `json:"transform,omitempty"`
	Color     *string          `json:"color,omitempty"`
	Texture   *string          `json:"texture,omitempty"`
	Light     *scene.Light     `json:"light,omitempty"`
	Camera    *scene.Camera    `json:"camera,omitempty"`
}

func (s *Server) handlePatchObject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req objectPatch
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.run(w, r, http.StatusOK, s.withDoc(func(d *document.Document) (any, error) {
		o, ok := d.Object(id)
		if !ok {
			return nil, fmt.Errorf("%s: %w", id, scene.ErrNotFound)
		}
		if req.Transform != nil {
			o.Transform = *req.Transform
		}
		if req.Color != nil {
			o.Color = *req.Color
		}
		if req.Texture != nil {
			o.Texture = *req.Texture
		}
		if req.Light != nil {
			o.Light = req.Light
		}
		if req.Camera != nil {
			o.Camera = req.Camera
		}
		if err := d.UpdateObject(o); err != nil {
			return nil, err
		}
		o, _ = d.Object(id)
		return o, nil
	}))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, http.StatusOK, func() (any, error) {
		started, err := s.session.Save()
		if err != nil {
			return nil, err
		}
		return map[string]any{"started": started, "saveStatus": s.session.Status()}, nil
	})
}

type openRequest struct {
	Template string `json:"template"`
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Template == "" {
		req.Template = templates.Default
	}
	s.run(w, r, http.StatusCreated, func() (any, error) {
		if err := s.session.Open(req.Template); err != nil {
			return nil, err
		}
		return s.snapshot(), nil
	})
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, http.StatusOK, func() (any, error) {
		s.session.ReturnToMenu()
		return s.snapshot(), nil
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	since := 0
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid since %q", v))
			return
		}
		since = n
	}
	s.run(w, r, http.StatusOK, s.withDoc(func(d *document.Document) (any, error) {
		entries := d.Console().Since(since)
		if entries == nil {
			entries = []logger.Entry{}
		}
		return entries, nil
	}))
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// handleGenerate runs the generator outside the loop; only the console announcements are
// posted to it. The caller applies the returned content through the other endpoints.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeError(w, http.StatusServiceUnavailable, assistant.ErrNotConfigured)
		return
	}
	kind, err := assistant.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	var req generateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	announce := func(ctx context.Context, fn func(*logger.Logger)) error {
		return s.loop.Do(ctx, func() {
			if d := s.session.Doc(); d != nil {
				fn(d.Console())
			}
		})
	}
	if err := announce(r.Context(), func(l *logger.Logger) { assistant.Announce(l, kind, req.Prompt) }); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	res := s.ai.Generate(r.Context(), kind, req.Prompt)
	_ = announce(r.Context(), func(l *logger.Logger) { assistant.Report(l, res) })
	if res.Err != nil {
		writeError(w, statusOf(res.Err), res.Err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"kind": string(res.Kind), "content": res.Content})
}
