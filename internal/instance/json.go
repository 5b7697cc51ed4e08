package instance

import "encoding/json"

// wireInstance is the JSON shape of a node as the editor front end expects it.
type wireInstance struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         Kind        `json:"type"`
	Undeletable  bool        `json:"undeletable,omitempty"`
	Unrenameable bool        `json:"unrenameable,omitempty"`
	Children     []*Instance `json:"children,omitempty"`
	Content      *string     `json:"content,omitempty"`
	Value        any         `json:"value,omitempty"`
	*GuiProps
}

// MarshalJSON flattens the payload into children, content or value.
func (n *Instance) MarshalJSON() ([]byte, error) {
	w := wireInstance{
		ID:           n.ID,
		Name:         n.Name,
		Type:         n.Kind,
		Undeletable:  n.Flags.Undeletable,
		Unrenameable: n.Flags.Unrenameable,
		GuiProps:     n.Gui,
	}
	switch p := n.Payload.(type) {
	case Container:
		w.Children = p.Children
		if w.Children == nil {
			w.Children = []*Instance{}
		}
	case Source:
		w.Content = &p.Content
	case Number:
		w.Value = p.Value
	case Text:
		w.Value = p.Value
	}
	return json.Marshal(w)
}
