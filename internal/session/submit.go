package session

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// FormSubmitter posts the round form when the channel reports the
// negotiation finished, taking over what the page's submit handler does in
// the browser.
type FormSubmitter struct {
	client *resty.Client
	url    string
}

func NewFormSubmitter(url string) *FormSubmitter {
	return &FormSubmitter{
		client: resty.New(),
		url:    url,
	}
}

func (s *FormSubmitter) Submit(ctx context.Context) error {
	if s.url == "" {
		return nil
	}
	resp, err := s.client.R().
		SetContext(ctx).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("submit round form: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("submit round form: status %s", resp.Status())
	}
	return nil
}
