package addon

import (
	"slices"

	"github.com/coocood/freecache"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/goccy/go-json"

	"github.com/dbytex91/debridcfg/internal/catalog"
	"github.com/dbytex91/debridcfg/internal/userconfig"
)

const (
	defaultCacheSize = 16 * 1024 * 1024 // 16MB
	manifestExpiry   = 60 * 60          // 1 hour
	qrExpiry         = 24 * 60 * 60     // 1 day
	qrSize           = 256
)

// Addon implements the configurable part of a Stremio addon: the configure
// page, install link generation and the manifest.
type Addon struct {
	id          string
	name        string
	version     string
	description string

	debridAPIKey string
	catalogs     []catalog.Definition
	cacheSize    int
	cache        *freecache.Cache
}

type Option func(*Addon)

func New(opts ...Option) *Addon {
	addon := &Addon{
		id:          "com.debridcfg.addon",
		name:        "DebridCfg",
		version:     "0.0.0",
		description: "Streams from debrid services, configured per install link",
		catalogs:    catalog.Defaults(),
		cacheSize:   defaultCacheSize,
	}

	for _, opt := range opts {
		opt(addon)
	}

	addon.cache = freecache.NewCache(addon.cacheSize)

	if addon.debridAPIKey == "" {
		log.Warn("No debrid key configured via environment variables. Users must configure via UI.")
	}

	return addon
}

// Register mounts every addon route on router.
func (add *Addon) Register(router fiber.Router) {
	router.Get("/", add.HandleRoot)
	router.Get("/manifest.json", add.HandleGetManifest)
	router.Get("/:userData/manifest.json", add.HandleGetManifest)
	router.Get("/configure", add.HandleConfigure)
	router.Get("/:userData/configure", add.HandleConfigure)
	router.Post("/configure", add.HandleSubmit)
	router.Post("/:userData/configure", add.HandleSubmit)
	router.Post("/api/link", add.HandleAPILink)
	router.Get("/:userData/qr.png", add.HandleQRCode)
	router.Get("/logo", add.HandleLogo)
	router.Get("/:userData/logo", add.HandleLogo)
}

func (add *Addon) HandleRoot(c *fiber.Ctx) error {
	return c.Redirect("/configure")
}

func (add *Addon) HandleGetManifest(c *fiber.Ctx) error {
	userDataRaw := c.Params("userData")

	if userDataRaw == "" {
		return c.JSON(add.manifest(c.BaseURL(), nil))
	}

	cacheKey := []byte("manifest:" + c.BaseURL() + "/" + userDataRaw)
	cached, err := add.cache.Get(cacheKey)
	if err == nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(cached)
	}

	userData, err := parseUserData(c)
	if err != nil {
		log.Warnf("Serving unconfigured manifest: %v", err)
		return c.JSON(add.manifest(c.BaseURL(), nil))
	}

	body, err := json.Marshal(add.manifest(c.BaseURL(), userData))
	if err != nil {
		return err
	}

	if err := add.cache.Set(cacheKey, body, manifestExpiry); err != nil {
		log.Warnf("Failed to cache manifest: %v", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(body)
}

func (add *Addon) manifest(baseURL string, userData *userconfig.Configuration) *Manifest {
	configRequired := add.debridAPIKey == ""
	if userData != nil {
		configRequired = userconfig.Validate(userData) != nil
	}

	return &Manifest{
		ID:          add.id,
		Name:        add.name,
		Description: add.description,
		Version:     manifestVersion(add.version),
		ResourceItems: []ResourceItem{
			{
				Name:       ResourceStream,
				Types:      []ContentType{ContentTypeMovie, ContentTypeSeries},
				IDPrefixes: []string{"tt"},
			},
		},
		Types:      []ContentType{ContentTypeMovie, ContentTypeSeries},
		// The selected catalogs travel in the token for the catalog backend.
		// This server has no catalog resource, so it advertises none.
		Catalogs:   []CatalogItem{},
		IDPrefixes: []string{"tt"},
		Logo:       baseURL + "/logo",
		BehaviorHints: &BehaviorHints{
			Configurable:          true,
			ConfigurationRequired: configRequired,
		},
	}
}

func (add *Addon) definition(id string) (catalog.Definition, bool) {
	idx := slices.IndexFunc(add.catalogs, func(d catalog.Definition) bool {
		return d.ID == id
	})
	if idx < 0 {
		return catalog.Definition{}, false
	}

	return add.catalogs[idx], true
}
