// Package mcp provides the Model Context Protocol surface for the UNO game
// service.
//
// The package exposes game operations as MCP tools (uno_start, uno_join,
// uno_begin, uno_play, uno_draw, uno_hand, uno_status, uno_top, uno_reset,
// list_sessions, list_rules, game_instructions) backed by a thin HTTP
// client that proxies every call to the REST API. The MCP process holds no
// game state of its own, so it can run beside or apart from the server and
// restart freely.
//
// Tool results are rendered as short human-readable text rather than raw
// JSON; errors come back as MCP tool errors carrying the API's error
// message.
package mcp
