package addon

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dbytex91/debridcfg/internal/userconfig"
)

var errConfigurationRequired = errors.New("configuration is required")

// parseUserData decodes the configuration token of the current route.
func parseUserData(c *fiber.Ctx) (*userconfig.Configuration, error) {
	userDataRaw := c.Params("userData")
	if userDataRaw == "" {
		return nil, errConfigurationRequired
	}

	return userconfig.Decode(userDataRaw)
}
