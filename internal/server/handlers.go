package server

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/fastbitmap/internal/bitmap"
	"github.com/ironsheep/fastbitmap/internal/imaging"
	"github.com/ironsheep/fastbitmap/internal/pixelbuf"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pixel_get", "pixel_set").
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
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the bitmap from the cache
//  4. Validates coordinates, since pixel buffers do not
//  5. Locks the bitmap through a pixel buffer and releases it before returning
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "pixel_load":
		return s.handlePixelLoad(args)

	// Reads
	case "pixel_get":
		return s.handlePixelGet(args)
	case "pixel_get_multi":
		return s.handlePixelGetMulti(args)
	case "pixel_dominant_colors":
		return s.handlePixelDominantColors(args)
	case "pixel_compare_regions":
		return s.handlePixelCompareRegions(args)

	// Writes
	case "pixel_set":
		return s.handlePixelSet(args)
	case "pixel_invert":
		return s.handlePixelInvert(args)

	// Copies
	case "pixel_clone":
		return s.handlePixelClone(args)
	case "pixel_crop":
		return s.handlePixelCrop(args)
	case "pixel_save":
		return s.handlePixelSave(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pathArgs struct {
	Path string `json:"path"`
}

type pointArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r regionArgs) region() imaging.Region {
	return imaging.Region{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
}

func (s *Server) handlePixelLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Read Handlers ===

func (s *Server) handlePixelGet(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(bm, a.X, a.Y)
}

type pixelGetMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handlePixelGetMulti(args json.RawMessage) (interface{}, error) {
	var a pixelGetMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(bm, points)
}

type pixelDominantColorsArgs struct {
	Path   string      `json:"path"`
	Count  int         `json:"count"`
	Region *regionArgs `json:"region,omitempty"`
}

func (s *Server) handlePixelDominantColors(args json.RawMessage) (interface{}, error) {
	var a pixelDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region *imaging.Region
	if a.Region != nil {
		r := a.Region.region()
		region = &r
	}
	return imaging.DominantColors(bm, a.Count, region)
}

type pixelCompareRegionsArgs struct {
	Path    string     `json:"path"`
	Region1 regionArgs `json:"region1"`
	Region2 regionArgs `json:"region2"`
}

func (s *Server) handlePixelCompareRegions(args json.RawMessage) (interface{}, error) {
	var a pixelCompareRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CompareRegions(bm, a.Region1.region(), a.Region2.region())
}

// === Write Handlers ===

type pixelSetArgs struct {
	Path  string `json:"path"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

func (s *Server) handlePixelSet(args json.RawMessage) (interface{}, error) {
	var a pixelSetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := pixelbuf.ParseHex(a.Color)
	if err != nil {
		return nil, err
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SetPixel(bm, a.X, a.Y, c)
}

func (s *Server) handlePixelInvert(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Invert(bm)
}

// === Copy Handlers ===

type pixelCloneArgs struct {
	Path string `json:"path"`
	Dest string `json:"dest"`
}

func (s *Server) handlePixelClone(args json.RawMessage) (interface{}, error) {
	var a pixelCloneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Dest == "" {
		return nil, fmt.Errorf("dest is required")
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	buf, err := pixelbuf.Wrap(bm, bitmap.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	clone, err := buf.Clone()
	if err != nil {
		return nil, err
	}
	if err := clone.Release(); err != nil {
		return nil, err
	}

	s.cache.Put(a.Dest, clone.Bitmap())
	return imaging.LoadImageInfo(s.cache, a.Dest)
}

type pixelCropArgs struct {
	Path     string      `json:"path"`
	Dest     string      `json:"dest"`
	Region   *regionArgs `json:"region,omitempty"`
	Quadrant string      `json:"quadrant,omitempty"`
}

func (s *Server) handlePixelCrop(args json.RawMessage) (interface{}, error) {
	var a pixelCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Dest == "" {
		return nil, fmt.Errorf("dest is required")
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region imaging.Region
	switch {
	case a.Region != nil && a.Quadrant != "":
		return nil, fmt.Errorf("region and quadrant are mutually exclusive")
	case a.Region != nil:
		region = a.Region.region()
	case a.Quadrant != "":
		if region, err = imaging.QuadrantRegion(bm.Width(), bm.Height(), a.Quadrant); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("one of region or quadrant is required")
	}

	out, err := imaging.Crop(bm, region)
	if err != nil {
		return nil, err
	}
	s.cache.Put(a.Dest, out)
	return imaging.LoadImageInfo(s.cache, a.Dest)
}

type pixelSaveArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
}

// PixelSaveResult reports where pixel_save wrote the image.
type PixelSaveResult struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	Format string `json:"format"`
}

func (s *Server) handlePixelSave(args json.RawMessage) (interface{}, error) {
	var a pixelSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	bm, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	if err := imaging.SaveBitmap(bm, a.Output); err != nil {
		return nil, err
	}
	s.logger.Info("saved image", "path", a.Path, "output", a.Output)

	return &PixelSaveResult{
		Path:   a.Path,
		Output: a.Output,
		Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(a.Output)), "."),
	}, nil
}
