package addon

import (
	"bytes"
	"errors"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/skip2/go-qrcode"

	"github.com/dbytex91/debridcfg/internal/catalog"
	"github.com/dbytex91/debridcfg/internal/configure"
	"github.com/dbytex91/debridcfg/internal/static"
	"github.com/dbytex91/debridcfg/internal/userconfig"
)

var serviceLabels = map[string]string{
	userconfig.ServiceRealDebrid: "Real-Debrid",
	userconfig.ServiceAllDebrid:  "AllDebrid",
}

var qualityLabels = map[userconfig.Quality]string{
	userconfig.Quality4K:      "4K",
	userconfig.Quality1080p:   "1080p",
	userconfig.Quality720p:    "720p",
	userconfig.Quality480p:    "480p",
	userconfig.QualityRips:    "Rips",
	userconfig.QualityCam:     "CAM",
	userconfig.QualityUnknown: "Unknown",
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type catalogView struct {
	ID      string
	Name    string
	Type    catalog.ContentType
	Checked bool
}

type pageView struct {
	Name    string
	Version string
	Action  string

	DebridKey    string
	DebridHTTP   string
	TMDBAPI      string
	MaxSize      string
	MaxSizeLabel string
	Services     []optionView
	Qualities    []optionView
	Catalogs     []catalogView

	Alert         string
	Link          string
	StremioLink   template.URL
	QRPath        string
	CopyRequested bool
}

// linkRequest is the body accepted by POST /api/link.
type linkRequest struct {
	Service                  string               `json:"service"`
	DebridKey                string               `json:"debridKey"`
	DebridHTTP               string               `json:"debridHttp"`
	TMDBAPI                  string               `json:"tmdbApi"`
	MaxSize                  string               `json:"maxSize"`
	SelectedQualityExclusion []userconfig.Quality `json:"selectedQualityExclusion"`
	SelectedCatalogs         []string             `json:"selectedCatalogs"`
}

type linkResponse struct {
	Token       string `json:"token"`
	ManifestURL string `json:"manifestUrl"`
	StremioURL  string `json:"stremioUrl"`
	ConfigURL   string `json:"configureUrl"`
}

func (add *Addon) HandleLogo(c *fiber.Ctx) error {
	return static.HandleLogo(c)
}

// HandleConfigure renders the configure page, pre-filled when the URL carries
// a configuration token.
func (add *Addon) HandleConfigure(c *fiber.Ctx) error {
	form := configure.NewForm(add.catalogs)
	if !form.Load(pageURL(c)) && c.Params("userData") != "" {
		log.Infof("Configure page requested without a usable token")
	}

	c.Response().Header.Add("Cache-control", "no-store")
	return add.render(c, fiber.StatusOK, add.view(c, form))
}

// HandleSubmit handles the configure form. "link" redirects to the stremio://
// URL, "copy" renders the page with the install link ready to copy.
func (add *Addon) HandleSubmit(c *fiber.Ctx) error {
	method := configure.Method(c.FormValue("method", string(configure.MethodLink)))
	if method != configure.MethodLink && method != configure.MethodCopy {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown method.",
		})
	}

	form := add.formFromRequest(c)
	link, err := form.Compose(pageURL(c))
	if errors.Is(err, userconfig.ErrRequiredFields) {
		view := add.view(c, form)
		view.Alert = configure.MessageRequiredFields
		return add.render(c, fiber.StatusBadRequest, view)
	}
	if err != nil {
		return err
	}

	if method == configure.MethodLink {
		return c.Redirect(link.StremioURL(), fiber.StatusFound)
	}

	view := add.view(c, form)
	view.Action = userconfig.ConfigurePath(link.Token)
	view.Link = link.HTTPURL()
	// html/template rewrites non-http schemes in href to #ZgotmplZ.
	view.StremioLink = template.URL(link.StremioURL())
	view.QRPath = "/" + link.Token + "/qr.png"
	view.CopyRequested = true
	return add.render(c, fiber.StatusOK, view)
}

func (add *Addon) HandleAPILink(c *fiber.Ctx) error {
	req := linkRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body.",
		})
	}

	form := configure.NewForm(add.catalogs)
	form.Service = req.Service
	form.DebridKey = req.DebridKey
	form.DebridHTTP = req.DebridHTTP
	form.TMDBAPI = req.TMDBAPI
	form.MaxSize = req.MaxSize
	for _, q := range req.SelectedQualityExclusion {
		if q.Valid() {
			form.Excluded.Add(q)
		}
	}
	if req.SelectedCatalogs != nil {
		form.Catalogs.Restore(req.SelectedCatalogs)
	}

	link, err := form.Compose(c.BaseURL() + "/configure")
	if errors.Is(err, userconfig.ErrRequiredFields) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(linkResponse{
		Token:       link.Token,
		ManifestURL: link.HTTPURL(),
		StremioURL:  link.StremioURL(),
		ConfigURL:   c.BaseURL() + userconfig.ConfigurePath(link.Token),
	})
}

// HandleQRCode serves a PNG QR code of the install URL for the token.
func (add *Addon) HandleQRCode(c *fiber.Ctx) error {
	if _, err := parseUserData(c); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid configuration data.",
		})
	}

	installURL := c.BaseURL() + userconfig.ManifestPath(c.Params("userData"))
	cacheKey := []byte("qr:" + installURL)

	png, err := add.cache.Get(cacheKey)
	if err != nil {
		png, err = qrcode.Encode(installURL, qrcode.Medium, qrSize)
		if err != nil {
			log.Errorf("Couldn't generate the QR code: %v", err)
			return err
		}

		if err := add.cache.Set(cacheKey, png, qrExpiry); err != nil {
			log.Warnf("Failed to cache QR code: %v", err)
		}
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "max-age=86400, public")
	return c.Send(png)
}

// formFromRequest binds a submitted configure form. The catalog order comes
// from the hidden catalogOrder field written by the page on submit.
func (add *Addon) formFromRequest(c *fiber.Ctx) *configure.Form {
	form := configure.NewForm(add.catalogs)
	form.Service = c.FormValue("service")
	form.DebridKey = c.FormValue("debridKey")
	form.DebridHTTP = c.FormValue("debridHttp")
	form.TMDBAPI = c.FormValue("tmdbApi")
	form.MaxSize = c.FormValue("maxSize")

	args := c.Request().PostArgs()
	for _, raw := range args.PeekMulti("quality") {
		if q := userconfig.Quality(raw); q.Valid() {
			form.Excluded.Add(q)
		}
	}

	if order := c.FormValue("catalogOrder"); order != "" {
		form.Catalogs.Arrange(strings.Split(order, ","))
	}

	checked := make([]string, 0, len(add.catalogs))
	for _, raw := range args.PeekMulti("catalog") {
		checked = append(checked, string(raw))
	}
	form.Catalogs.SetChecked(checked)

	return form
}

func (add *Addon) view(c *fiber.Ctx, form *configure.Form) *pageView {
	view := &pageView{
		Name:       add.name,
		Version:    add.version,
		Action:     c.Path(),
		DebridKey:  form.DebridKey,
		DebridHTTP: form.DebridHTTP,
		TMDBAPI:    form.TMDBAPI,
		MaxSize:    form.MaxSize,
	}

	if form.MaxSize != "" {
		view.MaxSizeLabel = (&userconfig.Configuration{MaxSize: form.MaxSize}).MaxSizeLabel()
	}

	for _, s := range userconfig.Services {
		view.Services = append(view.Services, optionView{
			Value:    s,
			Label:    serviceLabels[s],
			Selected: s == form.Service,
		})
	}

	for _, q := range userconfig.Qualities {
		view.Qualities = append(view.Qualities, optionView{
			Value:    string(q),
			Label:    qualityLabels[q],
			Selected: form.Excluded.Contains(q),
		})
	}

	for _, e := range form.Catalogs.Entries() {
		def, ok := add.definition(e.ID)
		if !ok {
			continue
		}
		view.Catalogs = append(view.Catalogs, catalogView{
			ID:      def.ID,
			Name:    def.Name,
			Type:    def.Type,
			Checked: e.Checked,
		})
	}

	return view
}

func (add *Addon) render(c *fiber.Ctx, status int, view *pageView) error {
	var buf bytes.Buffer
	if err := static.ConfigureTemplate.Execute(&buf, view); err != nil {
		log.Errorf("Failed to render configure page: %v", err)
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// pageURL is the absolute URL of the current request.
func pageURL(c *fiber.Ctx) string {
	return c.BaseURL() + c.OriginalURL()
}
