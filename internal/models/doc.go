// Package models defines the data transfer objects exchanged with the Festify API.
//
//   - [Artist] : an artist record as stored remotely
//   - [ArtistRequest] : the update payload for an artist
//   - [ErrorResponse] : the error body returned by the API
//   - [Country] : ISO 3166-1 alpha-2 codes offered by the artist editor
package models
