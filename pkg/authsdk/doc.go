// Package authsdk provides the wire types for the authgate HTTP API and a
// small client for services that consume it. The server handlers encode
// these same types, so the SDK and the service can never drift apart.
package authsdk
