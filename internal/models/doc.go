// Package models defines the domain entities shared by the curator's
// service clients, matching engine, and CLI layer.
//
// All types are plain data transfer objects owned by a single run:
//   - [Playlist] / [PlaylistExport] / [Track] : service-side playlist data
//   - [CatalogEntry] : one source track as presented to the model, with its
//     derived "Title by Artist" match identifier
//   - [Criteria] : the user's free-text description of the playlist to build
//
// Nothing here is persisted; the curator is stateless between invocations.
package models
