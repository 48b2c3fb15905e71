package oauth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"spotlogin/internal/config"
)

// FlowState represents where an authorization code flow currently is.
type FlowState int

const (
	// FlowStateIdle means Authenticate has not been called yet.
	FlowStateIdle FlowState = iota

	// FlowStateAwaitingCallback means the listener is bound and the user is
	// expected to complete consent in the browser.
	FlowStateAwaitingCallback

	// FlowStateCodeReceived means the redirect carried an authorization code.
	FlowStateCodeReceived

	// FlowStateExchangingToken means the code is being exchanged for a token.
	FlowStateExchangingToken

	// FlowStateAuthenticated means a session was built from the access token.
	FlowStateAuthenticated

	// FlowStateCallbackFailed means the listener could not be bound, the
	// callback timed out, or the redirect carried no usable code.
	FlowStateCallbackFailed

	// FlowStateTokenFetchFailed means the token endpoint did not yield a
	// usable token, or no session could be built from it.
	FlowStateTokenFetchFailed
)

// String returns the string representation of the flow state.
func (s FlowState) String() string {
	switch s {
	case FlowStateIdle:
		return "idle"
	case FlowStateAwaitingCallback:
		return "awaiting_callback"
	case FlowStateCodeReceived:
		return "code_received"
	case FlowStateExchangingToken:
		return "exchanging_token"
	case FlowStateAuthenticated:
		return "authenticated"
	case FlowStateCallbackFailed:
		return "callback_failed"
	case FlowStateTokenFetchFailed:
		return "token_fetch_failed"
	default:
		return "unknown"
	}
}

// TokenExchanger exchanges an authorization code for an access token.
// *oauth2.Config satisfies it.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// SessionFactory builds an authenticated session from an access token.
type SessionFactory[S any] func(ctx context.Context, token *oauth2.Token) (S, error)

// Flow runs one OAuth authorization code flow against a loopback redirect.
type Flow[S any] struct {
	cfg        config.OAuthClientConfig
	exchanger  TokenExchanger
	newSession SessionFactory[S]

	openBrowser   func(ctx context.Context, url string) error
	notifyURL     func(url string)
	onWait        func() (stop func())
	generateState func() string
	timeout       time.Duration
	appName       string
	logger        *slog.Logger

	mu    sync.RWMutex
	state FlowState
}

// FlowOption configures a Flow.
type FlowOption[S any] func(*Flow[S])

// WithBrowserOpener replaces the function used to open the authorization URL.
func WithBrowserOpener[S any](open func(ctx context.Context, url string) error) FlowOption[S] {
	return func(f *Flow[S]) {
		f.openBrowser = open
	}
}

// WithURLNotifier sets a function that is shown the authorization URL before
// the browser is launched, so that the user can open it manually.
func WithURLNotifier[S any](notify func(url string)) FlowOption[S] {
	return func(f *Flow[S]) {
		f.notifyURL = notify
	}
}

// WithWaitHook sets a function called when waiting for the callback starts.
// The returned function is called when waiting ends.
func WithWaitHook[S any](hook func() (stop func())) FlowOption[S] {
	return func(f *Flow[S]) {
		f.onWait = hook
	}
}

// WithCallbackTimeout overrides the callback wait bound from the config.
// Zero waits without a bound.
func WithCallbackTimeout[S any](timeout time.Duration) FlowOption[S] {
	return func(f *Flow[S]) {
		f.timeout = timeout
	}
}

// WithStateGenerator replaces the OAuth state generator. Returning an empty
// string disables state checking.
func WithStateGenerator[S any](generate func() string) FlowOption[S] {
	return func(f *Flow[S]) {
		f.generateState = generate
	}
}

// WithAppName sets the application name shown on the callback page.
func WithAppName[S any](name string) FlowOption[S] {
	return func(f *Flow[S]) {
		f.appName = name
	}
}

// WithLogger sets a custom logger.
func WithLogger[S any](logger *slog.Logger) FlowOption[S] {
	return func(f *Flow[S]) {
		f.logger = logger
	}
}

// NewFlow creates a flow for cfg. Codes are exchanged with exchanger and the
// resulting token is turned into a session by newSession.
func NewFlow[S any](cfg config.OAuthClientConfig, exchanger TokenExchanger, newSession SessionFactory[S], opts ...FlowOption[S]) *Flow[S] {
	f := &Flow[S]{
		cfg:           cfg,
		exchanger:     exchanger,
		newSession:    newSession,
		openBrowser:   OpenBrowser,
		notifyURL:     func(string) {},
		onWait:        func() func() { return func() {} },
		generateState: uuid.NewString,
		timeout:       cfg.CallbackTimeout,
		logger:        slog.Default(),
		state:         FlowStateIdle,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// State returns the current flow state.
func (f *Flow[S]) State() FlowState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *Flow[S]) setState(state FlowState) {
	f.mu.Lock()
	prev := f.state
	f.state = state
	f.mu.Unlock()

	f.logger.Debug("OAuth flow state changed", "from", prev.String(), "to", state.String())
}

// Authenticate runs the flow: bind the loopback listener, open the
// authorization URL, wait for the redirect, exchange the code and build the
// session. The listener is bound before the browser is launched, so a bind
// failure aborts without any browser or network activity.
//
// Errors are one of *RedirectURIError, *ListenerBindError, ErrCallbackTimeout,
// ErrAuthorizationDenied (wrapping the *CallbackError), ErrTokenFetchFailed
// (also wrapping a session factory error), or the context's error.
func (f *Flow[S]) Authenticate(ctx context.Context) (S, error) {
	var zero S

	state := f.generateState()

	listener, err := Listen(f.cfg.RedirectURI, ListenerOptions{
		DefaultPort:   f.cfg.DefaultCallbackPort,
		ExpectedState: state,
		AppName:       f.appName,
		Logger:        f.logger,
	})
	if err != nil {
		f.setState(FlowStateCallbackFailed)
		return zero, err
	}
	defer listener.Close()

	redirectURI := listener.RedirectURI()
	cfg := f.cfg
	cfg.RedirectURI = redirectURI
	req := BuildAuthorizationRequest(cfg, state)

	f.setState(FlowStateAwaitingCallback)
	f.notifyURL(req.URL)

	if err := f.openBrowser(ctx, req.URL); err != nil {
		f.logger.Warn("Could not open browser, open the authorization URL manually",
			"url", req.URL,
			"error", err.Error(),
		)
	}

	stopWaiting := f.onWait()
	outcome, err := listener.Wait(ctx, f.timeout)
	stopWaiting()
	if err != nil {
		f.setState(FlowStateCallbackFailed)
		return zero, err
	}

	if outcome.IsError() {
		f.setState(FlowStateCallbackFailed)
		return zero, fmt.Errorf("%w: %w", ErrAuthorizationDenied, outcome.Err)
	}

	f.setState(FlowStateCodeReceived)
	f.setState(FlowStateExchangingToken)
	f.logger.Debug("Exchanging authorization code", "code", redacted(outcome.Code), "redirect_uri", redirectURI)

	token, err := f.exchanger.Exchange(ctx, outcome.Code, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	if err != nil {
		f.setState(FlowStateTokenFetchFailed)
		return zero, fmt.Errorf("%w: %w", ErrTokenFetchFailed, err)
	}
	if token == nil || token.AccessToken == "" {
		f.setState(FlowStateTokenFetchFailed)
		return zero, fmt.Errorf("%w: token endpoint returned an empty access token", ErrTokenFetchFailed)
	}

	session, err := f.newSession(ctx, token)
	if err != nil {
		f.setState(FlowStateTokenFetchFailed)
		return zero, fmt.Errorf("%w: failed to create session: %w", ErrTokenFetchFailed, err)
	}

	f.setState(FlowStateAuthenticated)
	f.logger.Info("OAuth authentication successful",
		"token_type", token.Type(),
		"access_token", redacted(token.AccessToken),
		"has_refresh_token", token.RefreshToken != "",
	)

	return session, nil
}
