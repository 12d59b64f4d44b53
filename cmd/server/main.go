package main

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"

	"github.com/dbytex91/debridcfg/internal/addon"
)

type config struct {
	Port         int    `env:"PORT" envDefault:"7000"`
	AddonID      string `env:"ADDON_ID" envDefault:"com.debridcfg.addon"`
	AddonName    string `env:"ADDON_NAME" envDefault:"DebridCfg"`
	DebridAPIKey string `env:"DEBRID_API_KEY"`
	CacheSizeMB  int    `env:"CACHE_SIZE_MB" envDefault:"16"`

	SSLEnabled  bool   `env:"SSL_ENABLED"`
	SSLPort     int    `env:"SSL_PORT" envDefault:"7443"`
	SSLCertFile string `env:"SSL_CERT_FILE" envDefault:"/etc/ssl/local-ip-co/server.pem"`
	SSLKeyFile  string `env:"SSL_KEY_FILE" envDefault:"/etc/ssl/local-ip-co/server.key"`
	SSLDomain   string `env:"SSL_DOMAIN"`
}

var (
	maskedPathPattern = regexp.MustCompile(`^/([\w%+=-]+)/(?:configure|manifest|qr|logo)`)
	version           = "1.0.0"
)

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	add := addon.New(
		addon.WithID(cfg.AddonID),
		addon.WithName(cfg.AddonName),
		addon.WithVersion(version),
		addon.WithDebridKey(cfg.DebridAPIKey),
		addon.WithCacheSize(cfg.CacheSizeMB*1024*1024),
	)

	if cfg.SSLEnabled {
		go func() {
			httpsApp := newApp(add, cfg.AddonName+" SSL")

			log.Infof("Starting HTTPS server on :%d with SSL domain: %s", cfg.SSLPort, cfg.SSLDomain)
			log.Fatal(httpsApp.ListenTLS(fmt.Sprintf(":%d", cfg.SSLPort), cfg.SSLCertFile, cfg.SSLKeyFile))
		}()
	}

	app := newApp(add, cfg.AddonName)

	log.Infof("Starting HTTP server on :%d", cfg.Port)
	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}

func newApp(add *addon.Addon, name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     name,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(cors.New())
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		CustomTags: map[string]logger.LogFunc{
			"maskedPath": func(output logger.Buffer, c *fiber.Ctx, data *logger.Data, extraParam string) (int, error) {
				return output.WriteString(maskPath(c.Path()))
			},
		},
		Format:        "${time} | ${status} | ${latency} | ${ip} | ${method} | ${maskedPath} | ${error}\n",
		TimeFormat:    "15:04:05",
		TimeZone:      "Local",
		TimeInterval:  500 * time.Millisecond,
		Output:        os.Stdout,
		DisableColors: false,
	}))

	add.Register(app)

	return app
}

// maskPath hides the configuration token, which carries the user's API keys.
func maskPath(urlPath string) string {
	loc := maskedPathPattern.FindStringSubmatchIndex(urlPath)
	if len(loc) > 3 {
		return urlPath[:loc[2]] + "***" + urlPath[loc[3]:]
	}

	return urlPath
}
