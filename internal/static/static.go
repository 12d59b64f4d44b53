package static

import (
	_ "embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed configure.html
var configure string

//go:embed logo.svg
var logo []byte

// ConfigureTemplate renders the configure page.
var ConfigureTemplate = template.Must(template.New("configure").Parse(configure))

func HandleLogo(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(logo)
}
