// Package server implements the MCP (Model Context Protocol) server for the
// magic-edit compositing pipeline.
//
// This package provides a JSON-RPC 2.0 server that exposes the
// masked-compositing operations through the MCP protocol. A client paints a
// selection over a photo, obtains the transmit image, round-trips it to a
// generative model of its choosing, and hands the generated fill back for
// compositing. The server never talks to a generator itself.
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
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Edit Pipeline:
//   - mask_feather: Soften a hard-edged selection mask
//   - edit_cut_hole: Derive the transmit image for the external generator
//   - edit_composite: Blend the generated fill back onto the base image
//   - edit_check_boundary: Report out-of-selection changes in the fill
//
// # Image Arguments
//
// Every image argument accepts either a file path or inline base64 data.
// Paths are decoded once and cached for the lifetime of the server process,
// so the typical flow (load base, feather, cut hole, composite) reads each
// file from disk at most once. Inline data suits the generated fill, which
// usually never touches disk.
//
// # Boundary Reporting
//
// edit_composite always succeeds even when the generator modified pixels
// outside the selection: the compositing arithmetic discards those changes
// unconditionally. The outcome is logged to stderr ("respected boundaries"
// or "corrected client-side") and returned in the boundary_report field.
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
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
