package configure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbytex91/debridcfg/internal/userconfig"
)

type recordingAlerter struct {
	messages []string
}

func (a *recordingAlerter) Alert(msg string) {
	a.messages = append(a.messages, msg)
}

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) Open(rawURL string) error {
	o.opened = append(o.opened, rawURL)
	return o.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newDispatcher(clip Clipboard) (*Dispatcher, *recordingAlerter, *recordingOpener, *[]string) {
	alerter := &recordingAlerter{}
	opener := &recordingOpener{}
	logged := &[]string{}
	return &Dispatcher{
		Alerter:   alerter,
		Opener:    opener,
		Clipboard: clip,
		Diagnostics: func(link string) {
			*logged = append(*logged, link)
		},
	}, alerter, opener, logged
}

func TestGenerateLinkOpensStremioURL(t *testing.T) {
	d, alerter, opener, _ := newDispatcher(nil)

	outcome, link, err := d.Generate(context.Background(), filledForm(), pageURL, MethodLink)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOpened, outcome)
	assert.Equal(t, []string{link.StremioURL()}, opener.opened)
	assert.Empty(t, alerter.messages)
}

func TestGenerateLinkIgnoresOpenerFailure(t *testing.T) {
	d, _, opener, _ := newDispatcher(nil)
	opener.err = errors.New("no handler for stremio://")

	outcome, _, err := d.Generate(context.Background(), filledForm(), pageURL, MethodLink)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOpened, outcome)
}

func TestGenerateCopy(t *testing.T) {
	clip := &fakeClipboard{}
	d, alerter, opener, logged := newDispatcher(clip)

	outcome, link, err := d.Generate(context.Background(), filledForm(), pageURL, MethodCopy)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCopied, outcome)
	assert.Equal(t, link.HTTPURL(), clip.text)
	assert.Equal(t, []string{MessageCopied}, alerter.messages)
	assert.Empty(t, opener.opened)
	assert.Empty(t, *logged)
}

func TestGenerateCopyFailure(t *testing.T) {
	d, alerter, _, logged := newDispatcher(&fakeClipboard{err: errors.New("denied")})

	outcome, _, err := d.Generate(context.Background(), filledForm(), pageURL, MethodCopy)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCopyFailed, outcome)
	assert.Equal(t, []string{MessageCopyFailed}, alerter.messages)
	assert.Empty(t, *logged)
}

func TestGenerateClipboardUnavailable(t *testing.T) {
	d, alerter, _, logged := newDispatcher(nil)

	outcome, link, err := d.Generate(context.Background(), filledForm(), pageURL, MethodCopy)
	require.NoError(t, err)
	assert.Equal(t, OutcomeClipboardUnavailable, outcome)
	assert.Equal(t, []string{MessageClipboardUnsupported}, alerter.messages)
	assert.Equal(t, []string{link.HTTPURL()}, *logged)
}

func TestGenerateRequiredFields(t *testing.T) {
	clip := &fakeClipboard{}
	d, alerter, opener, _ := newDispatcher(clip)
	f := filledForm()
	f.TMDBAPI = ""

	for _, method := range []Method{MethodLink, MethodCopy} {
		alerter.messages = nil

		outcome, link, err := d.Generate(context.Background(), f, pageURL, method)
		assert.ErrorIs(t, err, userconfig.ErrRequiredFields)
		assert.Equal(t, OutcomeInvalid, outcome)
		assert.Nil(t, link)
		assert.Equal(t, []string{MessageRequiredFields}, alerter.messages)
	}

	assert.Empty(t, opener.opened)
	assert.Empty(t, clip.text)
}

func TestGenerateUnknownMethod(t *testing.T) {
	d, alerter, _, _ := newDispatcher(nil)

	_, _, err := d.Generate(context.Background(), filledForm(), pageURL, Method("share"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.Empty(t, alerter.messages)
}
