package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"memoras-backend/internal/domain"
	"net/http"
	"time"
)

// RenderClient talks to the render service that lays out the printable
// program from the assembled memorial data.
type RenderClient struct {
	baseURL    string
	httpClient *http.Client
}

type Renderer interface {
	Render(ctx context.Context, memorial domain.MemorialResponse) ([]byte, error)
}

func NewRenderClient(baseURL string) *RenderClient {
	return &RenderClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type renderRequest struct {
	Memorial domain.MemorialResponse `json:"memorial"`
}

// Render posts the full program payload and returns the PDF bytes.
func (c *RenderClient) Render(ctx context.Context, memorial domain.MemorialResponse) ([]byte, error) {
	url := fmt.Sprintf("%s/render", c.baseURL)

	body, err := json.Marshal(renderRequest{Memorial: memorial})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"render service error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	return io.ReadAll(resp.Body)
}
