// Package oauth implements the OAuth 2.0 authorization code flow for a local
// CLI using a loopback redirect.
//
// # Architecture
//
// The package provides:
//   - BuildAuthorizationRequest: the provider consent URL for a client config
//   - CallbackListener: a temporary HTTP server on the redirect URI's loopback
//     port that accepts exactly one callback and then shuts down
//   - OpenBrowser: best-effort launch of the system browser
//   - Flow: the coordinator that binds the listener, opens the browser, waits
//     for the redirect and exchanges the code for a token
//
// # Flow
//
//	Idle -> AwaitingCallback -> CodeReceived -> ExchangingToken -> Authenticated
//	                         \-> CallbackFailed        \-> TokenFetchFailed
//
// The listener is bound before the browser is launched. The wait for the
// callback is bounded by the configured timeout, and the listener's port is
// released on every exit path.
//
// # Usage
//
//	flow := oauth.NewFlow(cfg.OAuthClient(), exchanger, newSession,
//	    oauth.WithURLNotifier[*provider.Client](func(u string) {
//	        fmt.Println("Open this URL to sign in:", u)
//	    }),
//	)
//	session, err := flow.Authenticate(ctx)
//
// # Errors
//
// Authentication-phase failures are reported as *RedirectURIError,
// *ListenerBindError, ErrCallbackTimeout, ErrAuthorizationDenied or
// ErrTokenFetchFailed. IsAuthenticationError tells them apart from errors
// returned by the session later on.
package oauth
