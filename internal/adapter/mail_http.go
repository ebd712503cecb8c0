package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

// httpMailRequest is the JSON body posted to the mail API.
type httpMailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type httpMailAdapter struct {
	client *utils.HTTPClient
	url    string
	from   string

	logger *logger.Logger
}

// NewHTTPMailAdapter constructs a [MailAdapter] that POSTs every message as
// JSON to cfg.APIURL, authenticating with cfg.APIKey as a bearer token.
//
// Returns an error if cfg.APIURL is empty or is not an absolute URL.
func NewHTTPMailAdapter(cfg config.Mail, logger *logger.Logger) (MailAdapter, error) {
	apiURL, err := normalizeURL(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mail api url: %w", err)
	}

	client := utils.NewHTTPClient(cfg.Timeout)
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &httpMailAdapter{client: client, url: apiURL, from: cfg.From, logger: logger}, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return u.String(), nil
}

func (a *httpMailAdapter) Send(ctx context.Context, mail models.Mail) error {
	if mail.To == "" {
		return ErrEmptyRecipient
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(httpMailRequest{From: a.from, To: mail.To, Subject: mail.Subject, Text: mail.Text}).
		Post(a.url)
	if err != nil {
		return fmt.Errorf("mail api request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*httpMailAdapter.Send").
			Int("status", resp.StatusCode()).
			Msg("mail api rejected message")
		return err
	}

	return nil
}
