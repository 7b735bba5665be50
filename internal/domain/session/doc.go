// Package session holds the authenticated player session a launch is made for.
//
// A Session carries the tokens and identity substituted into the game's
// argument template. Sessions are produced by an external authenticator;
// Offline builds one locally for unauthenticated play.
//
// Example Usage:
//
//	sess := session.Offline("Steve")
//	props, _ := sess.PropertiesJSON()
package session
