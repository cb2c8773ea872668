// Package signwarp provides an HTTP client for the SignWarpX web API.
//
// # Overview
//
// The plugin exposes warp listings, teleport statistics and player presence
// over a small JSON API, plus a websocket push endpoint. This package covers
// the HTTP half; the push channel lives in package live.
//
// # Discovery
//
// The client starts from the configured api_bind address and knows only
// /api/stats. Discover fetches it and adopts the advertised apiUrl and wsUrl,
// falling back to the configured host when either is missing. Every other
// call resolves against the discovered API base and returns ErrNotInitialized
// until discovery has succeeded:
//
//	client, err := signwarp.NewClient("127.0.0.1:8080")
//	if err != nil {
//		return err
//	}
//	if _, err := client.Discover(ctx); err != nil {
//		return err
//	}
//	warps, skipped, err := client.FetchAllWarps(ctx)
//
// When the server announces a port change, Rebase moves every endpoint to
// the new port on the same host.
//
// # Endpoints
//
//   - GET  /api/stats: warp totals and discovery endpoints
//   - GET  {api}/warps?page=N&size=M: one page of warps
//   - GET  {api}/teleport-stats and {api}/enhanced-stats: usage aggregates
//   - GET  {api}/players/online-status and {api}/players/online: presence
//   - POST {api}/warps/{name}/invite and /uninvite: body {"player": "..."}
//
// FetchAllWarps asks for page 0 with a page size of 1000 and follows hasNext,
// since the plugin caps page sizes server side.
//
// # Errors
//
// Nothing here panics on bad input. Non-2xx responses become *APIError with
// the server's message (or error) field carried verbatim in Message, which
// ServerMessage extracts for notifications. Warp records that fail to decode
// or have no name are skipped and counted rather than failing the page.
//
// Responses are requested with gzip and decompressed transparently.
package signwarp
