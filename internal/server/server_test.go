package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-studio/internal/assistant"
	"game-studio/internal/llm"
	"game-studio/internal/project"
)

type env struct {
	ts      *httptest.Server
	clock   *project.FakeClock
	loop    *project.Loop
	session *project.Session
}

func newEnv(t *testing.T, ai *assistant.Service) *env {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	e := &env{
		clock: project.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		loop:  project.NewLoop(),
	}
	go e.loop.Run(ctx)
	e.session = project.NewSession(project.Options{Clock: e.clock, Post: e.loop.Post})
	e.ts = httptest.NewServer(New(e.session, e.loop, ai, "").Handler())
	t.Cleanup(e.ts.Close)
	return e
}

func (e *env) do(t *testing.T, method, path, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, e.ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *env) open(t *testing.T, template string) {
	t.Helper()
	require.Equal(t, http.StatusCreated, e.do(t, "POST", "/api/project", `{"template":"`+template+`"}`, nil))
}

type docView struct {
	State   string `json:"state"`
	Status  string `json:"saveStatus"`
	Files   []node `json:"files"`
	Objects []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"sceneObjects"`
	Selection struct {
		Hierarchy string `json:"selectedHierarchyId"`
		Object    string `json:"selectedSceneObjectId"`
		Script    string `json:"activeScriptId"`
	} `json:"selection"`
}

type node struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Undeletable bool    `json:"undeletable"`
	Children    []node  `json:"children"`
	Content     *string `json:"content"`
}

func TestDocumentLifecycle(t *testing.T) {
	e := newEnv(t, nil)

	var doc docView
	require.Equal(t, http.StatusOK, e.do(t, "GET", "/api/document", "", &doc))
	assert.Equal(t, "main-menu", doc.State)
	assert.Empty(t, doc.Files)

	assert.Equal(t, http.StatusConflict, e.do(t, "GET", "/api/tree", "", nil))

	e.open(t, "basic")
	require.Equal(t, http.StatusOK, e.do(t, "GET", "/api/document", "", &doc))
	assert.Equal(t, "editor", doc.State)
	assert.Equal(t, "unsaved", doc.Status)
	require.Len(t, doc.Files, 9)
	assert.Equal(t, "Workspace", doc.Files[0].Name)
	assert.True(t, doc.Files[0].Undeletable)
	assert.Len(t, doc.Objects, 4)

	require.Equal(t, http.StatusOK, e.do(t, "DELETE", "/api/project", "", &doc))
	assert.Equal(t, "main-menu", doc.State)
}

func TestAddRenameDelete(t *testing.T) {
	e := newEnv(t, nil)
	e.open(t, "basic")

	var added node
	require.Equal(t, http.StatusCreated, e.do(t, "POST", "/api/instances", `{"parentId":"workspace","type":"Part","name":"Crate"}`, &added))
	assert.Equal(t, "Crate", added.Name)
	assert.Equal(t, "Part", added.Type)

	var renamed node
	require.Equal(t, http.StatusOK, e.do(t, "PATCH", "/api/instances/"+added.ID, `{"name":"Big Crate"}`, &renamed))
	assert.Equal(t, "Big Crate", renamed.Name)

	var doc docView
	e.do(t, "GET", "/api/document", "", &doc)
	var names []string
	for _, o := range doc.Objects {
		names = append(names, o.Name)
	}
	assert.Contains(t, names, "Big Crate")

	assert.Equal(t, http.StatusOK, e.do(t, "DELETE", "/api/instances/"+added.ID, "", nil))
	assert.Equal(t, http.StatusNotFound, e.do(t, "DELETE", "/api/instances/"+added.ID, "", nil))
}

func TestProtectedFolderRefused(t *testing.T) {
	e := newEnv(t, nil)
	e.open(t, "basic")

	var body map[string]string
	assert.Equal(t, http.StatusConflict, e.do(t, "DELETE", "/api/instances/workspace", "", &body))
	assert.Equal(t, "Cannot delete protected system folder: Workspace", body["error"])

	assert.Equal(t, http.StatusConflict, e.do(t, "PATCH", "/api/instances/lighting", `{"name":"Lights"}`, &body))
	assert.Equal(t, "Cannot rename protected system folder: Lighting", body["error"])

	var logs []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	require.Equal(t, http.StatusOK, e.do(t, "GET", "/api/logs?since=2", "", &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, "warn", logs[0].Type)
	assert.Equal(t, "warn", logs[1].Type)

	assert.Equal(t, http.StatusBadRequest, e.do(t, "GET", "/api/logs?since=x", "", nil))
}

func TestFailedEditsLeaveDocumentUnchanged(t *testing.T) {
	e := newEnv(t, nil)
	e.open(t, "basic")

	var before docView
	require.Equal(t, http.StatusOK, e.do(t, "GET", "/api/document", "", &before))
	assert.Equal(t, http.StatusBadRequest, e.do(t, "POST", "/api/instances", `{"parentId":"workspace","type":"Part","name":"   "}`, nil))
	assert.Equal(t, http.StatusBadRequest, e.do(t, "PATCH", "/api/instances/cube-1", `{"name":"Pillar","value":"7"}`, nil))

	var after docView
	require.Equal(t, http.StatusOK, e.do(t, "GET", "/api/document", "", &after))
	assert.Equal(t, before.Files, after.Files)
	assert.Equal(t, before.Objects, after.Objects)
}

func TestPatchValueAndScript(t *testing.T) {
	e := newEnv(t, nil)
	e.open(t, "blank")

	var n node
	require.Equal(t, http.StatusCreated, e.do(t, "POST", "/api/instances", `{"parentId":"replicated-storage","type":"NumberValue"}`, &n))
	var raw map[string]any
	require.Equal(t, http.StatusOK, e.do(t, "PATCH", "/api/instances/"+n.ID, `{"value":"42"}`, &raw))
	assert.Equal(t, float64(42), raw["value"])
	assert.Equal(t, http.StatusBadRequest, e.do(t, "PATCH", "/api/instances/"+n.ID, `{"value":"lots"}`, nil))

	var script node
	require.Equal(t, http.StatusCreated, e.do(t, "POST", "/api/instances", `{"parentId":"server-script-service","type":"Script","content":"print(1)"}`, &script))
	require.NotNil(t, script.Content)
	assert.Equal(t, "print(1)", *script.Content)
	require.Equal(t, http.StatusOK, e.do(t, "PATCH", "/api/instances/"+script.ID, `{"content":"print(2)"}`, &script))
	assert.Equal(t, "print(2)", *script.Content)

	assert.Equal(t, http.StatusBadRequest, e.do(t, "POST", "/api/instances", `{"parentId":"workspace","type":"Nope"}`, nil))
}

func TestSelectAndPatchObject(t *testing.T) {
	e := newEnv(t, nil)
	e.open(t, "basic")

	var sel map[string]string
	require.Equal(t, http.StatusOK, e.do(t, "POST", "/api/select", `{"sceneObjectId":"cube-1"}`, &sel))
	assert.Equal(t, "cube-1", sel["selectedSceneObjectId"])
	assert.Equal(t, "cube-1", sel["selectedHierarchyId"])
	assert.Equal(t, http.StatusNotFound, e.do(t, "POST", "/api/select", `{"sceneObjectId":"ghost"}`, nil))

	var obj struct {
		Color     string `json:"color"`
		Transform struct {
			Rotation struct{ Y float32 } `json:"rotation"`
		} `json:"transform"`
	}
	body := `{"color":"#ff0000","transform":{"position":{"x":1,"y":2,"z":3},"rotation":{"x":0,"y":-90,"z":0},"scale":{"x":1,"y":1,"z":1}}}`
	require.Equal(t, http.StatusOK, e.do(t, "PATCH", "/api/objects/cube-1", body, &obj))
	assert.Equal(t, "#ff0000", obj.Color)
	assert.Equal(t, float32(270), obj.Transform.Rotation.Y)
}

func TestSaveThroughAPI(t *testing.T) {
	e := newEnv(t, nil)
	e.open(t, "blank")

	var res map[string]any
	require.Equal(t, http.StatusOK, e.do(t, "POST", "/api/save", "", &res))
	assert.Equal(t, true, res["started"])
	assert.Equal(t, "saving", res["saveStatus"])

	e.clock.Advance(time.Second)
	assert.Eventually(t, func() bool {
		var doc docView
		e.do(t, "GET", "/api/document", "", &doc)
		return doc.Status == "auto-saving"
	}, 2*time.Second, 5*time.Millisecond)

	require.Equal(t, http.StatusOK, e.do(t, "POST", "/api/save", "", &res))
	assert.Equal(t, false, res["started"])
}

type stubText struct{ reply string }

func (s stubText) Complete(context.Context, llm.Request) (string, error) { return s.reply, nil }

func TestGenerate(t *testing.T) {
	e := newEnv(t, assistant.New(stubText{reply: "```lua\nprint('hi')\n```"}, nil, assistant.Options{}))
	e.open(t, "basic")

	var res map[string]string
	require.Equal(t, http.StatusOK, e.do(t, "POST", "/api/ai/code", `{"prompt":"say hi"}`, &res))
	assert.Equal(t, "print('hi')", res["content"])

	var logs []struct{ Message string }
	e.do(t, "GET", "/api/logs", "", &logs)
	assert.Equal(t, "AI Assistant: code generated successfully.", logs[len(logs)-1].Message)

	assert.Equal(t, http.StatusNotFound, e.do(t, "POST", "/api/ai/music", `{"prompt":"x"}`, nil))
	assert.Equal(t, http.StatusServiceUnavailable, e.do(t, "POST", "/api/ai/texture", `{"prompt":"stone"}`, nil))
}

func TestGenerateWithoutAssistant(t *testing.T) {
	e := newEnv(t, nil)
	var res map[string]string
	assert.Equal(t, http.StatusServiceUnavailable, e.do(t, "POST", "/api/ai/code", `{"prompt":"x"}`, &res))
	assert.Equal(t, "API key not configured.", res["error"])
}
