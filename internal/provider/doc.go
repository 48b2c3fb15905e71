// Package provider is the authenticated Spotify Web API session used after
// the OAuth flow completes.
//
// It owns the provider-specific parts of the login: the oauth2.Config used to
// exchange authorization codes, and a small REST client for the current user's
// profile, artist search and artist details. Only the fields the CLI prints
// are modeled.
//
// API failures are returned as *APIError so that callers can tell them apart
// from authentication errors.
package provider
