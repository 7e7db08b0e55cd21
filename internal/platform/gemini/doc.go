// Package gemini provides text models backed by Google's Gemini API for the
// development backend.
//
// This package is an infrastructure adapter: it translates a plain prompt into
// a Gemini GenerateContent call and returns the concatenated text of the first
// candidate, without exposing genai types to callers. Several Model values can
// share one underlying client, which is how the backend builds its primary and
// fallback models.
//
// The package depends on the google.golang.org/genai client library for
// communicating with the Gemini API.
package gemini
