package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/goccy/go-json"
	"github.com/pkg/browser"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/dbytex91/debridcfg/internal/catalog"
	"github.com/dbytex91/debridcfg/internal/configure"
	"github.com/dbytex91/debridcfg/internal/userconfig"
)

const methodPrint = "print"

type generateFlags struct {
	page       string
	from       string
	service    string
	debridKey  string
	debridHTTP string
	tmdbKey    string
	maxSize    string
	exclude    []string
	catalogs   []string
	method     string
	qrFile     string
}

var rootCmd = &cobra.Command{
	Use:           "linkgen",
	Short:         "Build install links for the debrid addon.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newGenerateCmd(), newDecodeCmd())
	// keep stdout for the link itself
	browser.Stdout = os.Stderr
}

func newGenerateCmd() *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an install link and open, copy or print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := buildForm(cmd, f)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), form, f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.page, "page", "http://127.0.0.1:7000/configure", "configure page URL the link is generated for")
	flags.StringVar(&f.from, "from", "", "existing /<token>/configure URL to start from")
	flags.StringVar(&f.service, "service", userconfig.ServiceRealDebrid, "debrid service (realdebrid, alldebrid)")
	flags.StringVar(&f.debridKey, "debrid-key", "", "debrid service API key")
	flags.StringVar(&f.debridHTTP, "debrid-http", "", "alternate debrid HTTP endpoint")
	flags.StringVar(&f.tmdbKey, "tmdb-key", "", "TMDB API key")
	flags.StringVar(&f.maxSize, "max-size", "", "max size in GB")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "qualities to exclude (4k,1080p,720p,480p,rips,cam,unknown)")
	flags.StringSliceVar(&f.catalogs, "catalogs", nil, "catalogs to enable, in display order")
	flags.StringVar(&f.method, "method", methodPrint, "link, copy or print")
	flags.StringVar(&f.qrFile, "qr", "", "also write a QR code PNG of the link to this file")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <configure-url>",
		Short: "Print the configuration carried by a configure URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := userconfig.ParseConfigureURL(args[0])
			if !ok {
				return errors.New("URL does not carry a configuration token")
			}

			out, err := json.MarshalIndent(c, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

// buildForm starts from --from when given, then applies the flags the user set.
func buildForm(cmd *cobra.Command, f *generateFlags) (*configure.Form, error) {
	form := configure.NewForm(catalog.Defaults())
	if f.from != "" && !form.Load(f.from) {
		return nil, fmt.Errorf("%s does not carry a configuration token", f.from)
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, value string) {
		if flags.Changed(name) || (f.from == "" && value != "") {
			*dst = value
		}
	}
	set("service", &form.Service, f.service)
	set("debrid-key", &form.DebridKey, f.debridKey)
	set("debrid-http", &form.DebridHTTP, f.debridHTTP)
	set("tmdb-key", &form.TMDBAPI, f.tmdbKey)
	set("max-size", &form.MaxSize, f.maxSize)

	if flags.Changed("exclude") {
		form.Excluded.Clear()
		for _, raw := range f.exclude {
			q, err := userconfig.ParseQuality(raw)
			if err != nil {
				return nil, err
			}
			form.Excluded.Add(q)
		}
	}

	if flags.Changed("catalogs") {
		for _, id := range f.catalogs {
			if _, ok := catalog.Lookup(id); !ok {
				return nil, fmt.Errorf("%w %q", catalog.ErrUnknownEntry, id)
			}
		}
		form.Catalogs.Restore(f.catalogs)
	}

	return form, nil
}

func runGenerate(ctx context.Context, form *configure.Form, f *generateFlags, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var link *configure.Link
	if f.method == methodPrint {
		l, err := form.Compose(f.page)
		if err != nil {
			return err
		}
		link = l
		fmt.Fprintln(stdout, link.HTTPURL())
	} else {
		d := newDispatcher(stdout, stderr)
		outcome, l, err := d.Generate(ctx, form, f.page, configure.Method(f.method))
		if err != nil {
			return err
		}
		link = l
		if outcome == configure.OutcomeCopyFailed {
			return errors.New("link was not copied")
		}
	}

	if f.qrFile != "" {
		if err := qrcode.WriteFile(link.HTTPURL(), qrcode.Medium, 256, f.qrFile); err != nil {
			return fmt.Errorf("write QR code: %w", err)
		}
	}

	return nil
}

type stderrAlerter struct {
	w io.Writer
}

func (a stderrAlerter) Alert(msg string) {
	fmt.Fprintln(a.w, msg)
}

type browserOpener struct{}

func (browserOpener) Open(rawURL string) error {
	return browser.OpenURL(rawURL)
}

type systemClipboard struct{}

func (systemClipboard) WriteText(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}

func newDispatcher(stdout, stderr io.Writer) *configure.Dispatcher {
	d := &configure.Dispatcher{
		Alerter: stderrAlerter{w: stderr},
		Opener:  browserOpener{},
		Diagnostics: func(link string) {
			fmt.Fprintln(stdout, link)
		},
	}
	if !clipboard.Unsupported {
		d.Clipboard = systemClipboard{}
	}

	return d
}
