package render

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"game-studio/internal/texture"
)

// textureCache keeps one GPU texture per object, reloaded when the object's data URL changes.
type textureCache struct {
	entries map[string]cachedTexture
}

type cachedTexture struct {
	url string
	tex rl.Texture2D
}

func newTextureCache() *textureCache {
	return &textureCache{entries: make(map[string]cachedTexture)}
}

// get returns the texture of object id for url. An empty or undecodable url gives a zero
// texture, which draws as flat color.
func (c *textureCache) get(id, url string) rl.Texture2D {
	e, ok := c.entries[id]
	if ok && e.url == url {
		return e.tex
	}
	if ok {
		if e.tex.ID != 0 {
			rl.UnloadTexture(e.tex)
		}
		delete(c.entries, id)
	}
	if url == "" {
		return rl.Texture2D{}
	}
	img, err := texture.Decode(url)
	if err != nil {
		log.Printf("texture of %s: %v", id, err)
		c.entries[id] = cachedTexture{url: url}
		return rl.Texture2D{}
	}
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	c.entries[id] = cachedTexture{url: url, tex: tex}
	return tex
}

// prune unloads textures of objects that no longer exist.
func (c *textureCache) prune(live map[string]bool) {
	for id, e := range c.entries {
		if !live[id] {
			if e.tex.ID != 0 {
				rl.UnloadTexture(e.tex)
			}
			delete(c.entries, id)
		}
	}
}
