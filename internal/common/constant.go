// Package common contains shared constants and sentinel errors used across
// speechauth components.
package common

// AuthorizationHeaderName is the HTTP header carrying the session token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme prefix expected before the token.
const BearerScheme = "Bearer"
