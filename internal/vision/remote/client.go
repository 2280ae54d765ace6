// Package remote implements the vision contracts against an HTTP face
// service, for deployments that offload detection and encoding to a shared
// backend instead of running the native models locally.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/dmitrijs2005/facekeeper/internal/imagex"
	"github.com/dmitrijs2005/facekeeper/internal/vision"
)

// Client talks to a face service exposing POST /detect and POST /encode,
// both taking a base64 JPEG payload.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Close satisfies vision.Provider; the HTTP client holds no resources that
// need explicit release.
func (c *Client) Close() error { return nil }

type imageRequest struct {
	Image string `json:"image"`
}

type boundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type detectedFace struct {
	Bbox  boundingBox `json:"bbox"`
	Score float64     `json:"score"`
}

type detectResponse struct {
	Faces []detectedFace `json:"faces"`
}

type encodeResponse struct {
	Descriptor []float32 `json:"descriptor"`
}

// Locate posts the frame to /detect and returns the first reported face,
// padded by vision.FacePadding and clamped to the frame bounds.
func (c *Client) Locate(ctx context.Context, img image.Image) (vision.Region, bool, error) {
	var resp detectResponse
	if err := c.post(ctx, "/detect", img, &resp); err != nil {
		return vision.Region{}, false, err
	}
	if len(resp.Faces) == 0 {
		return vision.Region{}, false, nil
	}

	f := resp.Faces[0]
	rect := image.Rect(f.Bbox.X, f.Bbox.Y, f.Bbox.X+f.Bbox.Width, f.Bbox.Y+f.Bbox.Height)
	rect = vision.PadRegion(rect, vision.FacePadding, img.Bounds())
	return vision.Region{Rect: rect, Confidence: f.Score}, true, nil
}

// Extract posts the frame to /encode. A null or empty descriptor in the
// response means the service found no encodable face.
func (c *Client) Extract(ctx context.Context, img image.Image) (*vision.Descriptor, error) {
	var resp encodeResponse
	if err := c.post(ctx, "/encode", img, &resp); err != nil {
		return nil, err
	}
	if len(resp.Descriptor) == 0 {
		return nil, nil
	}
	if len(resp.Descriptor) != vision.DescriptorSize {
		return nil, fmt.Errorf("face service returned descriptor of length %d, want %d",
			len(resp.Descriptor), vision.DescriptorSize)
	}

	var d vision.Descriptor
	copy(d[:], resp.Descriptor)
	return &d, nil
}

func (c *Client) post(ctx context.Context, path string, img image.Image, out any) error {
	var jpg bytes.Buffer
	if err := imagex.EncodeJPEG(&jpg, img); err != nil {
		return err
	}

	body, err := json.Marshal(imageRequest{Image: base64.StdEncoding.EncodeToString(jpg.Bytes())})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("face service %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("face service %s: unexpected status %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
