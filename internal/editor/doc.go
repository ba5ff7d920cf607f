// Package editor implements the artist editing session used by the TUI and the CLI.
//
// A [Controller] is mounted with the artist id from the route and goes through:
//  1. [Controller.Load] : fetch the artist, seed the form and keep an untouched snapshot
//  2. [Controller.UpdateField] : merge one field, recompute validity
//  3. [Controller.Reset] : restore the snapshot
//  4. [Controller.Submit] : build the [models.ArtistRequest] and send it
//
// Feedback goes through an injected [Notifier] and a successful save navigates to [PathArtists] through the
// injected [Navigator]. A failed load is terminal for the session; a failed save leaves the form editable.
//
// The form is valid when the trimmed name and the trimmed genres string are both longer than two characters.
// Submit checks validity itself and refuses to run twice at once. [Controller.Dispose] makes the controller ignore
// results that arrive after the view was left.
package editor
