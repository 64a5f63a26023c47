package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/magic-edit-mcp/internal/masking"
	"github.com/ironsheep/magic-edit-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "mask_feather", "edit_composite").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Edit Pipeline
	case "mask_feather":
		return s.handleMaskFeather(args)
	case "edit_cut_hole":
		return s.handleEditCutHole(args)
	case "edit_composite":
		return s.handleEditComposite(args)
	case "edit_check_boundary":
		return s.handleEditCheckBoundary(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// resolveBuffer loads an image argument given either a file path (cached) or
// inline base64 data. Exactly one of the two must be set.
func (s *Server) resolveBuffer(field, path, data string) (*raster.Buffer, error) {
	switch {
	case path != "" && data != "":
		return nil, fmt.Errorf("%s: provide either a path or base64 data, not both", field)
	case path != "":
		return s.cache.LoadBuffer(path)
	case data != "":
		return raster.DecodeBase64(data)
	default:
		return nil, fmt.Errorf("%s: missing image (set %s_path or %s_base64)", field, field, field)
	}
}

// resolveMask is resolveBuffer for selection masks.
func (s *Server) resolveMask(field, path, data string) (*raster.Mask, error) {
	switch {
	case path != "" && data != "":
		return nil, fmt.Errorf("%s: provide either a path or base64 data, not both", field)
	case path != "":
		return s.cache.LoadMask(path)
	case data != "":
		return raster.MaskFromBase64(data)
	default:
		return nil, fmt.Errorf("%s: missing mask (set %s_path or %s_base64)", field, field, field)
	}
}

func featherStyle(style string) masking.FeatherStyle {
	if style == "" {
		return masking.FeatherStyleBox
	}
	return masking.FeatherStyle(style)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.GetDimensions(s.cache, a.Path)
}

// === Edit Pipeline Handlers ===

type maskFeatherArgs struct {
	MaskPath   string `json:"mask_path"`
	MaskBase64 string `json:"mask_base64"`
	Radius     int    `json:"radius"`
	Style      string `json:"style"`
}

// FeatherResult is a feathered mask plus whether the selection was empty.
type FeatherResult struct {
	*raster.ImageResult
	MaskEmpty bool `json:"mask_empty"`
}

func (s *Server) handleMaskFeather(args json.RawMessage) (interface{}, error) {
	var a maskFeatherArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mask, err := s.resolveMask("mask", a.MaskPath, a.MaskBase64)
	if err != nil {
		return nil, err
	}

	var feathered *raster.Mask
	switch featherStyle(a.Style) {
	case masking.FeatherStyleBox:
		feathered, err = masking.Feather(mask, a.Radius)
	case masking.FeatherStyleGaussian:
		feathered, err = masking.FeatherGaussian(mask, a.Radius)
	default:
		return nil, fmt.Errorf("%w: unknown feather style %q", raster.ErrInvalidParameter, a.Style)
	}
	if err != nil {
		return nil, err
	}

	encoded, err := feathered.EncodeResult()
	if err != nil {
		return nil, err
	}
	return &FeatherResult{ImageResult: encoded, MaskEmpty: feathered.Empty()}, nil
}

type editCutHoleArgs struct {
	BasePath   string `json:"base_path"`
	BaseBase64 string `json:"base_base64"`
	MaskPath   string `json:"mask_path"`
	MaskBase64 string `json:"mask_base64"`
	Radius     int    `json:"radius"`
	Style      string `json:"style"`
}

// CutHoleResult is the transmit image for the external generator.
type CutHoleResult struct {
	*raster.ImageResult

	// MaskEmpty warns that the selection is entirely zero: the transmit
	// image equals the base and the generator round trip can be skipped.
	MaskEmpty bool `json:"mask_empty"`
}

func (s *Server) handleEditCutHole(args json.RawMessage) (interface{}, error) {
	var a editCutHoleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	base, err := s.resolveBuffer("base", a.BasePath, a.BaseBase64)
	if err != nil {
		return nil, err
	}
	mask, err := s.resolveMask("mask", a.MaskPath, a.MaskBase64)
	if err != nil {
		return nil, err
	}

	edit, err := masking.NewEditStyled(base, mask, a.Radius, featherStyle(a.Style))
	if err != nil {
		return nil, err
	}
	if edit.MaskEmpty() {
		log.Printf("edit_cut_hole: %v; generator round trip can be skipped", raster.ErrEmptyMask)
	}

	encoded, err := edit.HoleImage().EncodeResult()
	if err != nil {
		return nil, err
	}
	return &CutHoleResult{ImageResult: encoded, MaskEmpty: edit.MaskEmpty()}, nil
}

type editCompositeArgs struct {
	BasePath   string `json:"base_path"`
	BaseBase64 string `json:"base_base64"`
	FillPath   string `json:"fill_path"`
	FillBase64 string `json:"fill_base64"`
	MaskPath   string `json:"mask_path"`
	MaskBase64 string `json:"mask_base64"`
	Radius     int    `json:"radius"`
	Style      string `json:"style"`
	Tolerance  *int   `json:"tolerance"`
	ResizeFill *bool  `json:"resize_fill"`
}

// CompositeResult is the final edited image plus the advisory boundary
// report.
type CompositeResult struct {
	*raster.ImageResult

	// BoundaryReport describes whether the generator modified pixels outside
	// the selection. Informational: containment is enforced regardless.
	BoundaryReport *masking.BoundaryReport `json:"boundary_report"`

	// MaskEmpty indicates the selection was entirely zero and the output
	// equals the base image.
	MaskEmpty bool `json:"mask_empty"`

	// FillResized indicates the fill arrived with different dimensions and
	// was resampled to match the base before compositing.
	FillResized bool `json:"fill_resized"`
}

func (s *Server) handleEditComposite(args json.RawMessage) (interface{}, error) {
	var a editCompositeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tolerance := 10
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}
	resizeFill := true
	if a.ResizeFill != nil {
		resizeFill = *a.ResizeFill
	}

	base, err := s.resolveBuffer("base", a.BasePath, a.BaseBase64)
	if err != nil {
		return nil, err
	}
	fill, err := s.resolveBuffer("fill", a.FillPath, a.FillBase64)
	if err != nil {
		return nil, err
	}
	mask, err := s.resolveMask("mask", a.MaskPath, a.MaskBase64)
	if err != nil {
		return nil, err
	}

	edit, err := masking.NewEditStyled(base, mask, a.Radius, featherStyle(a.Style))
	if err != nil {
		return nil, err
	}

	fillResized := false
	if !base.SameSize(fill) && resizeFill {
		fill = raster.ResizeToMatch(fill, base.Width, base.Height)
		fillResized = true
	}

	result, err := edit.Apply(fill, tolerance)
	if err != nil {
		return nil, err
	}

	if result.Report.Violated {
		log.Printf("edit_composite: generator modified %d of %d pixels outside the selection (max delta %d); corrected client-side",
			result.Report.ViolatingPixelCount, result.Report.OutsidePixelCount, result.Report.MaxDelta)
	} else {
		log.Printf("edit_composite: generator respected boundaries (%d outside pixels checked)",
			result.Report.OutsidePixelCount)
	}

	encoded, err := result.Image.EncodeResult()
	if err != nil {
		return nil, err
	}
	return &CompositeResult{
		ImageResult:    encoded,
		BoundaryReport: result.Report,
		MaskEmpty:      edit.MaskEmpty(),
		FillResized:    fillResized,
	}, nil
}

type editCheckBoundaryArgs struct {
	BasePath   string `json:"base_path"`
	BaseBase64 string `json:"base_base64"`
	FillPath   string `json:"fill_path"`
	FillBase64 string `json:"fill_base64"`
	MaskPath   string `json:"mask_path"`
	MaskBase64 string `json:"mask_base64"`
	Radius     int    `json:"radius"`
	Style      string `json:"style"`
	Tolerance  *int   `json:"tolerance"`
}

func (s *Server) handleEditCheckBoundary(args json.RawMessage) (interface{}, error) {
	var a editCheckBoundaryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tolerance := 10
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}

	base, err := s.resolveBuffer("base", a.BasePath, a.BaseBase64)
	if err != nil {
		return nil, err
	}
	fill, err := s.resolveBuffer("fill", a.FillPath, a.FillBase64)
	if err != nil {
		return nil, err
	}
	mask, err := s.resolveMask("mask", a.MaskPath, a.MaskBase64)
	if err != nil {
		return nil, err
	}

	edit, err := masking.NewEditStyled(base, mask, a.Radius, featherStyle(a.Style))
	if err != nil {
		return nil, err
	}
	return masking.CheckBoundary(base, fill, edit.FeatheredMask(), tolerance)
}
