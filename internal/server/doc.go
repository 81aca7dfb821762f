// Package server implements the MCP (Model Context Protocol) server for pixel-level image access.
//
// This package provides a JSON-RPC 2.0 server that exposes per-pixel reads and
// writes on cached images through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Loading:
//   - pixel_load: Load image and report its native pixel format
//
// Reads:
//   - pixel_get: Get color at pixel
//   - pixel_get_multi: Sample multiple points under one lock
//   - pixel_dominant_colors: Extract color palette
//   - pixel_compare_regions: Compare two regions
//
// Writes:
//   - pixel_set: Set color at pixel
//   - pixel_invert: Invert every pixel
//
// Copies:
//   - pixel_clone: Copy into a new 32 bpp image
//   - pixel_crop: Copy a region into a new 32 bpp image
//   - pixel_save: Encode the cached image to a file
//
// # Image Caching
//
// Images are decoded once and cached by path for the lifetime of the server.
// Writes change the cached bitmap, not the file; pixel_save writes it out.
// pixel_clone and pixel_crop store their results under a caller-chosen key
// that later calls use as the path.
//
// Tool calls are handled one at a time. Each handler locks the bitmap through
// a pixel buffer and releases it before returning.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Error("server failed", "error", err)
//	}
package server
