package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/pkg/config"
)

// defaultEntry página servida cuando la ruta no corresponde a un archivo.
const defaultEntry = "index.html"

// RegisterStatic sirve el frontend desde cfg.Root. Las rutas que no existen en disco
// devuelven la página de entrada (200) salvo bajo /api, que responde 404 JSON.
// No hace nada si cfg.Root está vacío.
func RegisterStatic(app *fiber.App, cfg config.StaticConfig) {
	if cfg.Root == "" {
		return
	}
	entry := cfg.Entry
	if entry == "" {
		entry = defaultEntry
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		root = cfg.Root
	}
	entryPath := filepath.Join(root, filepath.Base(entry))

	app.Static("/", root, fiber.Static{Index: filepath.Base(entry)})
	app.Get("/*", func(c *fiber.Ctx) error {
		if c.Path() == "/api" || strings.HasPrefix(c.Path(), "/api/") {
			return fiber.ErrNotFound
		}
		return c.SendFile(entryPath)
	})
}
