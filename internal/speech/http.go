package speech

import (
	"fmt"
	"io"
	"net/http"
)

// StatusError is a non-200 reply from a TTS provider.
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, truncate(e.Body, 200))
}

// fetchAudio sends req and returns the whole response body, which must be
// non-empty.
func fetchAudio(client *http.Client, req *http.Request, provider string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading audio: %w", provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: provider, Status: resp.StatusCode, Body: string(data)}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty audio", provider)
	}
	return data, nil
}
