package oauth

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// shutdownTimeout bounds how long closing the listener waits for the
// in-flight callback response to be written.
const shutdownTimeout = 5 * time.Second

//go:embed templates/callback_success.html
var callbackSuccessHTML string

//go:embed templates/callback_error.html
var callbackErrorHTML string

var (
	successTemplate = template.Must(template.New("success").Funcs(sprig.HtmlFuncMap()).Parse(callbackSuccessHTML))
	errorTemplate   = template.Must(template.New("error").Funcs(sprig.HtmlFuncMap()).Parse(callbackErrorHTML))
)

// CallbackOutcome is the result of the single redirect a listener accepts.
// Exactly one of Code and Err is set.
type CallbackOutcome struct {
	Code string
	Err  *CallbackError
}

// IsError returns true if the callback did not carry an authorization code.
func (o CallbackOutcome) IsError() bool {
	return o.Err != nil
}

// ListenerOptions configures a CallbackListener.
type ListenerOptions struct {
	// DefaultPort is used when the redirect URI has no explicit port.
	// Zero means such redirect URIs are rejected.
	DefaultPort int

	// ExpectedState, when set, must match the state parameter of the callback.
	ExpectedState string

	// AppName is shown on the success page.
	AppName string

	Logger *slog.Logger
}

// CallbackListener is a temporary loopback HTTP server for receiving the
// OAuth redirect. It accepts one callback, then shuts down.
type CallbackListener struct {
	addr          string
	path          string
	redirectURI   string
	expectedState string
	appName       string
	logger        *slog.Logger

	server   *http.Server
	listener net.Listener

	resultCh chan CallbackOutcome
	errorCh  chan error

	once      sync.Once
	closeOnce sync.Once
	closeErr  error
}

// ResolveCallbackAddr extracts the loopback host, port and path the listener
// must serve for redirectURI. An explicit port wins over defaultPort.
func ResolveCallbackAddr(redirectURI string, defaultPort int) (host string, port int, path string, err error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", 0, "", &RedirectURIError{URI: redirectURI, Reason: err.Error()}
	}
	if u.Scheme != "http" {
		return "", 0, "", &RedirectURIError{URI: redirectURI, Reason: "loopback redirect must use the http scheme"}
	}

	host = u.Hostname()
	if !isLoopbackHost(host) {
		return "", 0, "", &RedirectURIError{URI: redirectURI, Reason: "host must be localhost or a loopback address"}
	}

	switch p := u.Port(); {
	case p != "":
		port, err = strconv.Atoi(p)
		if err != nil || port < 0 || port > 65535 {
			return "", 0, "", &RedirectURIError{URI: redirectURI, Reason: "invalid port " + strconv.Quote(p)}
		}
	case defaultPort > 0:
		port = defaultPort
	default:
		return "", 0, "", &RedirectURIError{URI: redirectURI, Reason: "no port and no default callback port configured"}
	}

	path = u.EscapedPath()
	if path == "" {
		path = "/"
	}

	return host, port, path, nil
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Listen binds the loopback address encoded in redirectURI and starts serving.
// It returns a *RedirectURIError when the URI cannot be served and a
// *ListenerBindError when the port cannot be bound.
func Listen(redirectURI string, opts ListenerOptions) (*CallbackListener, error) {
	host, port, path, err := ResolveCallbackAddr(redirectURI, opts.DefaultPort)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &ListenerBindError{Addr: addr, Err: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	l := &CallbackListener{
		addr:          listener.Addr().String(),
		path:          path,
		redirectURI:   effectiveRedirectURI(redirectURI, listener.Addr()),
		expectedState: opts.ExpectedState,
		appName:       opts.AppName,
		logger:        logger,
		listener:      listener,
		resultCh:      make(chan CallbackOutcome, 1),
		errorCh:       make(chan error, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", l.handleCallback)

	l.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	l.server.SetKeepAlivesEnabled(false)

	go func() {
		if err := l.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case l.errorCh <- err:
			default:
			}
		}
	}()

	l.logger.Debug("OAuth callback listener started", "addr", l.addr, "path", l.path)
	return l, nil
}

// effectiveRedirectURI replaces the port of redirectURI with the bound one,
// so that port 0 or a default port appear in the URI sent to the provider.
func effectiveRedirectURI(redirectURI string, bound net.Addr) string {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return redirectURI
	}
	tcpAddr, ok := bound.(*net.TCPAddr)
	if !ok {
		return redirectURI
	}
	if u.Port() == strconv.Itoa(tcpAddr.Port) {
		return redirectURI
	}
	u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(tcpAddr.Port))
	return u.String()
}

// Addr returns the bound network address.
func (l *CallbackListener) Addr() string {
	return l.addr
}

// RedirectURI returns the redirect URI served by this listener, with the
// bound port filled in.
func (l *CallbackListener) RedirectURI() string {
	return l.redirectURI
}

// Wait blocks until the callback arrives, timeout elapses, or ctx is done.
// A timeout of zero waits without a bound. The listener is closed before
// Wait returns on every path.
//
// A callback without a code is not an error of Wait: it is reported through
// CallbackOutcome.Err.
func (l *CallbackListener) Wait(ctx context.Context, timeout time.Duration) (CallbackOutcome, error) {
	defer l.Close()

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case outcome := <-l.resultCh:
		return outcome, nil
	case err := <-l.errorCh:
		return CallbackOutcome{}, fmt.Errorf("callback server failed: %w", err)
	case <-timer:
		l.logger.Warn("Timed out waiting for OAuth callback", "addr", l.addr, "timeout", timeout)
		return CallbackOutcome{}, &timeoutError{after: timeout}
	case <-ctx.Done():
		return CallbackOutcome{}, ctx.Err()
	}
}

// Close shuts the server down and releases the port. It is safe to call
// more than once; later calls return the first call's result.
func (l *CallbackListener) Close() error {
	l.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		l.closeErr = l.server.Shutdown(ctx)
		// Shutdown already closed the listener; a second close only reports
		// net.ErrClosed.
		if err := l.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) && l.closeErr == nil {
			l.closeErr = err
		}
		l.logger.Debug("OAuth callback listener stopped", "addr", l.addr)
	})
	return l.closeErr
}

// handleCallback handles every request on the listener. Only requests on the
// redirect path resolve the outcome, and only the first of them.
func (l *CallbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.EscapedPath() != l.path {
		http.NotFound(w, r)
		return
	}

	var handled bool
	l.once.Do(func() {
		handled = true
		l.processCallback(w, r)
	})

	if !handled {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
	}
}

// processCallback is called exactly once via sync.Once.
func (l *CallbackListener) processCallback(w http.ResponseWriter, r *http.Request) {
	requested := &url.URL{
		Scheme:   "http",
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
	query := requested.Query()

	outcome := l.outcomeFor(query)

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")

	if outcome.IsError() {
		l.logger.Warn("OAuth callback without authorization code",
			"kind", outcome.Err.Kind.String(),
			"error", outcome.Err.ProviderError,
			"error_description", outcome.Err.Description,
		)
		l.render(w, http.StatusBadRequest, errorTemplate, map[string]string{
			"Title":       "Authorization failed",
			"Error":       errorCode(outcome.Err),
			"Description": outcome.Err.Description,
		})
	} else {
		l.logger.Debug("OAuth callback received authorization code", "url", requested.Path, "code", redacted(outcome.Code))
		l.render(w, http.StatusOK, successTemplate, map[string]string{
			"Title": "Authorization successful",
			"App":   l.appName,
		})
	}

	select {
	case l.resultCh <- outcome:
	default:
	}

	// Shutdown waits for this response to finish, so it cannot run inline.
	go l.Close()
}

func (l *CallbackListener) outcomeFor(query url.Values) CallbackOutcome {
	code := query.Get("code")
	providerErr := query.Get("error")

	if code == "" || providerErr != "" {
		return CallbackOutcome{Err: &CallbackError{
			Kind:          NoCodeInCallback,
			ProviderError: providerErr,
			Description:   query.Get("error_description"),
		}}
	}

	if l.expectedState != "" && query.Get("state") != l.expectedState {
		return CallbackOutcome{Err: &CallbackError{Kind: StateMismatch}}
	}

	return CallbackOutcome{Code: code}
}

func errorCode(e *CallbackError) string {
	if e.ProviderError != "" {
		return e.ProviderError
	}
	return e.Kind.String()
}

func (l *CallbackListener) render(w http.ResponseWriter, status int, tmpl *template.Template, data map[string]string) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		l.logger.Error("Failed to render callback page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// AwaitCallback binds the listener for redirectURI, waits for one callback
// and releases the port.
func AwaitCallback(ctx context.Context, redirectURI string, timeout time.Duration, opts ListenerOptions) (CallbackOutcome, error) {
	l, err := Listen(redirectURI, opts)
	if err != nil {
		return CallbackOutcome{}, err
	}
	return l.Wait(ctx, timeout)
}
