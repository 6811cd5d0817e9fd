package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/firejournal/firejournal/internal/common"
)

// HTTPClassifier calls a classification endpoint over HTTP: the image bytes
// are POSTed as the request body, the response is a JSON array of
// {"label": ..., "confidence": ...} objects.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
}

func NewHTTPClassifier(endpoint string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, imageBytes []byte) ([]Label, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("building classify request: %w", err)
	}
	req.Header.Set("Content-Type", common.ImageContentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classify request: unexpected status %d", resp.StatusCode)
	}

	var labels []Label
	if err := json.NewDecoder(resp.Body).Decode(&labels); err != nil {
		return nil, fmt.Errorf("decoding classify response: %w", err)
	}

	return labels, nil
}
