package configure

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/dbytex91/debridcfg/internal/userconfig"
)

// Method selects what Generate does with a composed link.
type Method string

const (
	MethodLink Method = "link"
	MethodCopy Method = "copy"
)

// Outcome is the terminal result of one Generate call.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeInvalid
	OutcomeOpened
	OutcomeCopied
	OutcomeCopyFailed
	OutcomeClipboardUnavailable
)

const (
	MessageRequiredFields       = "Please fill all required fields"
	MessageClipboardUnsupported = "Your browser does not support clipboard"
	MessageCopied               = "Link copied to clipboard"
	MessageCopyFailed           = "Error copying link to clipboard"
)

var ErrUnknownMethod = errors.New("configure: unknown method")

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// Opener hands a URL to an external application.
type Opener interface {
	Open(rawURL string) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Dispatcher delivers generated links. A nil Clipboard means clipboard access
// is unavailable.
type Dispatcher struct {
	Alerter   Alerter
	Opener    Opener
	Clipboard Clipboard
	// Diagnostics receives links that could not be delivered. Defaults to the
	// package logger.
	Diagnostics func(link string)
}

func (d *Dispatcher) diagnostic(link string) {
	if d.Diagnostics != nil {
		d.Diagnostics(link)
		return
	}
	log.Info(link)
}

// Generate composes the link for form and delivers it according to method.
// Exactly one alert is shown per call, except when the link is only opened.
func (d *Dispatcher) Generate(ctx context.Context, form *Form, pageURL string, method Method) (Outcome, *Link, error) {
	if method != MethodLink && method != MethodCopy {
		return OutcomeNone, nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	link, err := form.Compose(pageURL)
	if errors.Is(err, userconfig.ErrRequiredFields) {
		d.Alerter.Alert(MessageRequiredFields)
		return OutcomeInvalid, nil, err
	}
	if err != nil {
		return OutcomeNone, nil, err
	}

	switch method {
	case MethodLink:
		if err := d.Opener.Open(link.StremioURL()); err != nil {
			log.Warnf("Failed to open stremio link: %v", err)
		}
		return OutcomeOpened, link, nil
	default:
		return d.copy(ctx, link), link, nil
	}
}

func (d *Dispatcher) copy(ctx context.Context, link *Link) Outcome {
	text := link.HTTPURL()

	if d.Clipboard == nil {
		d.Alerter.Alert(MessageClipboardUnsupported)
		d.diagnostic(text)
		return OutcomeClipboardUnavailable
	}

	if err := d.Clipboard.WriteText(ctx, text); err != nil {
		log.Errorf("Failed to write link to clipboard: %v", err)
		d.Alerter.Alert(MessageCopyFailed)
		return OutcomeCopyFailed
	}

	d.Alerter.Alert(MessageCopied)
	return OutcomeCopied
}
