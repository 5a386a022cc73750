package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/stripe-locator/internal/detection"
	"github.com/ironsheep/stripe-locator/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "stripe_detect", "image_crop").
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
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// Stripe Detection
	case "stripe_scale_ladder":
		return s.handleStripeScaleLadder(args)
	case "stripe_classify_pixel":
		return s.handleStripeClassifyPixel(args)
	case "stripe_detect":
		return s.handleStripeDetect(args)
	case "stripe_crop_result":
		return s.handleStripeCropResult(args)

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

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

// === Stripe Detection Handlers ===

type stripeScaleLadderArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Steps  int `json:"steps"`
}

// ScaleLadderResult lists the pattern sizes searched for an image size.
type ScaleLadderResult struct {
	detection.MaskParams
	Ladder []int `json:"ladder"`
}

func (s *Server) handleStripeScaleLadder(args json.RawMessage) (interface{}, error) {
	var a stripeScaleLadderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", a.Width, a.Height)
	}
	if a.Steps == 0 {
		a.Steps = s.opts.LadderSteps
	}
	params := detection.OptimalMaskParams(a.Width, a.Height, a.Steps)
	return &ScaleLadderResult{MaskParams: params, Ladder: params.Ladder()}, nil
}

type stripeClassifyPixelArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// ClassifyPixelResult is a sampled color with the class the detector gives it.
type ClassifyPixelResult struct {
	*imaging.ColorResult
	Class string `json:"class"`
}

func (s *Server) handleStripeClassifyPixel(args json.RawMessage) (interface{}, error) {
	var a stripeClassifyPixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := imaging.SampleColor(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &ClassifyPixelResult{
		ColorResult: c,
		Class:       detection.ClassifyHSV(c.HSV8).String(),
	}, nil
}

// DetectResult is the stripe_detect response.
type DetectResult struct {
	Found  bool                    `json:"found"`
	X      int                     `json:"x"`
	Y      int                     `json:"y"`
	Scale  int                     `json:"scale"`
	Ratio  float64                 `json:"ratio"`
	Params detection.MaskParams    `json:"params"`
	Scales []detection.ScaleReport `json:"scales"`
}

func (s *Server) handleStripeDetect(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.detect(a.Path)
	if err != nil {
		return nil, err
	}
	return &DetectResult{
		Found:  res.Found,
		X:      res.Point.X,
		Y:      res.Point.Y,
		Scale:  res.Scale,
		Ratio:  res.Ratio,
		Params: res.Params,
		Scales: res.Scales,
	}, nil
}

type stripeCropResultArgs struct {
	Path   string  `json:"path"`
	Radius int     `json:"radius"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleStripeCropResult(args json.RawMessage) (interface{}, error) {
	var a stripeCropResultArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Radius == 0 {
		a.Radius = 64
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	res, err := s.detect(a.Path)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, detection.ErrNotFound
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	marked := imaging.DrawBullseye(img, res.Point, s.marker)
	return imaging.CropAround(marked, res.Point, a.Radius, a.Scale)
}

// detect runs the detector on a cached image. A scanned image without a
// target is not an error here; the result says Found=false.
func (s *Server) detect(path string) (*detection.Result, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := detection.New(s.opts).Detect(img)
	if err != nil && !errors.Is(err, detection.ErrNotFound) {
		return nil, err
	}
	return res, nil
}
