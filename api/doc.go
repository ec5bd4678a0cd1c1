// Package api provides the HTTP REST surface for the UNO game service.
//
// The api package implements:
//   - Session lifecycle endpoints (start, status, list, reset)
//   - Game operation endpoints (join, begin, play, draw)
//   - Read endpoints for a player's hand and the session win ranking
//   - Rules preset listing
//
// Endpoints:
//
//	POST   /api/sessions/{id}          - Start a new game in a chat
//	GET    /api/sessions/{id}          - Session status
//	DELETE /api/sessions/{id}          - Force-reset a session
//	GET    /api/sessions               - List live sessions
//	POST   /api/sessions/{id}/players  - Join the pending game
//	POST   /api/sessions/{id}/begin    - Deal hands and flip the first card
//	POST   /api/sessions/{id}/play     - Play a card
//	POST   /api/sessions/{id}/draw     - Draw a card and pass the turn
//	GET    /api/sessions/{id}/hand     - The requesting player's hand
//	GET    /api/sessions/{id}/top      - Win ranking for the chat
//	GET    /api/rules                  - Available rules presets
//	GET    /api/health                 - Health check
//
// Cards travel as the player-typed string form ("red 7", "green +2",
// "wild4"); wild plays carry a declared_color field.
//
// Error Handling:
//
// Errors come back as JSON {"error": "..."} with the status determined by
// the error kind: 404 for missing sessions, 409 for lifecycle conflicts,
// 422 for rejected game commands, 400 for malformed input. A single
// logging middleware emits one line per request; handlers never log.
package api
