// Package server implements the MCP (Model Context Protocol) server for the
// stripe target detector.
//
// This package provides a JSON-RPC 2.0 server that exposes detection through
// the MCP protocol, so an MCP client can locate striped survey targets in
// photographs and inspect why a photo did or did not match.
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
// Basic Image Information:
//   - image_dimensions: Get width and height
//   - image_crop: Extract rectangular region
//
// Stripe Detection:
//   - stripe_scale_ladder: Pattern sizes searched for an image size
//   - stripe_classify_pixel: Color of a pixel and its red/white/none class
//   - stripe_detect: Locate the target and report every size searched
//   - stripe_crop_result: Zoom on the located target with a marker drawn
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A photo that was scanned without finding a target is not an error for
// stripe_detect: the result carries found=false. Images smaller than every
// pattern size are.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
