package templates

import "game-studio/internal/instance"

type systemFolder struct {
	id       string
	name     string
	children []systemFolder
}

// systemFolders is the fixed top level of every project, in display order.
var systemFolders = []systemFolder{
	{id: "workspace", name: "Workspace"},
	{id: "lighting", name: "Lighting"},
	{id: "replicated-storage", name: "ReplicatedStorage"},
	{id: "server-script-service", name: "ServerScriptService"},
	{id: "starter-player", name: "StarterPlayer", children: []systemFolder{
		{id: "starter-player-scripts", name: "StarterPlayerScripts"},
		{id: "starter-character-scripts", name: "StarterCharacterScripts"},
	}},
	{id: "starter-gui", name: "StarterGui"},
	{id: "starter-pack", name: "StarterPack"},
	{id: "assets-folder", name: "Assets"},
	{id: "audio-folder", name: "Audio"},
}

// Well-known system folder ids.
const (
	Workspace           = "workspace"
	Lighting            = "lighting"
	ServerScriptService = "server-script-service"
	StarterGui          = "starter-gui"
)

// SystemFolderIDs returns the top-level system folder ids in display order.
func SystemFolderIDs() []string {
	ids := make([]string, len(systemFolders))
	for i, sf := range systemFolders {
		ids[i] = sf.id
	}
	return ids
}

func isSystemFolder(id string) bool {
	var walk func([]systemFolder) bool
	walk = func(list []systemFolder) bool {
		for _, sf := range list {
			if sf.id == id || walk(sf.children) {
				return true
			}
		}
		return false
	}
	return walk(systemFolders)
}

var addOptions = map[string][]instance.Kind{
	"workspace":                 {instance.Part, instance.Wedge, instance.Cone, instance.Script, instance.LocalScript, instance.Folder, instance.Model},
	"lighting":                  {instance.DirectionalLight, instance.PointLight},
	"replicated-storage":        {instance.RemoteEvent, instance.ModuleScript, instance.Folder, instance.Model},
	"server-script-service":     {instance.Script, instance.ModuleScript, instance.Folder},
	"starter-player-scripts":    {instance.LocalScript, instance.ModuleScript},
	"starter-character-scripts": {instance.Script, instance.LocalScript, instance.ModuleScript},
	"starter-gui":               {instance.ScreenGui},
	"starter-pack":              {instance.Tool},
	"assets-folder":             {instance.Folder},
	"audio-folder":              {instance.Folder},
}

// AddOptions returns the kinds offered by the explorer's add menu under parentID.
// Folders without an entry offer Folder only.
func AddOptions(parentID string) []instance.Kind {
	if opts, ok := addOptions[parentID]; ok {
		return append([]instance.Kind(nil), opts...)
	}
	return []instance.Kind{instance.Folder}
}
