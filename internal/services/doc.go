// Package services defines the [ArtistService] interface for the Festify API and implements it over HTTP.
//
// # Results
//
// The API answers either with an artist or with an error body of the form {"detail": "..."}.
// [FestifyService] turns that into an explicit result: a [*models.Artist] on success, an [*APIError] carrying the
// detail otherwise. Transport failures (connection refused, timeouts) are wrapped with [shared.ErrAPIRequest].
// A 2xx body without an "id" is treated as an error result.
//
// # Transport
//
// Every request carries an X-Request-ID header generated with [shared.GenerateID].
// When a token is configured the [http.Client] is wrapped by [oauth2.NewClient] with a static bearer token.
// Requests wait on a [rate.Limiter] when api.rate_limit is positive.
//
// # Endpoints
//
//	GET /artists        → []Artist
//	GET /artists/{id}   → Artist | {detail}
//	PUT /artists/{id}   → Artist | {detail}
package services
