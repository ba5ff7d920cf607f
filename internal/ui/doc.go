// Package ui implements the festify terminal console using bubbletea's Elm architecture.
//
// The console mirrors the routes of the web admin:
//  1. [HomeView] : landing page ("/")
//  2. [ArtistListView] : browse artists ("/artists")
//  3. [EditArtistView] : edit one artist through an [editor.Controller] ("/edit-artist/{id}")
//  4. [ErrorView] : terminal load failure with a link back home
//
// Every view is framed by a fixed header and footer. Notifications and navigation requested by the controller flow
// through a channel-backed bridge and are delivered as messages, so a save never blocks input.
package ui
