package topic

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dialogs/dialog-topic-service/pkg/provider"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// Client of the topic subscription management endpoint:
// https://developers.google.com/instance-id/reference/server
//
// Authorization:
// 1. download service-account.json from https://console.firebase.google.com/project/_/settings/serviceaccounts/adminsdk
// 2. add to request header: Authorization: Bearer <oauth token>

const (
	// DefaultEndpoint is the host of the subscription server
	DefaultEndpoint = "https://iid.googleapis.com"

	subscribePath   = "iid/v1:batchAdd"
	unsubscribePath = "iid/v1:batchRemove"
)

type Client struct {
	client *http.Client

	endpoint string

	// oauth token
	token atomic.Value

	// service-account config:
	// https://console.firebase.google.com/project/_/settings/serviceaccounts/adminsdk
	jwtConfig *jwt.Config

	tokenSource oauth2.TokenSource
}

type Option func(*Client)

// WithEndpoint replaces the target host
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithTokenSource replaces the service account credentials
func WithTokenSource(src oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = src
	}
}

func New(serviceAccount []byte, timeout time.Duration, opts ...Option) (*Client, error) {

	if timeout <= 0 {
		timeout = time.Second * 10
	}

	c := &Client{
		endpoint: DefaultEndpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.tokenSource == nil {
		scope := []string{
			// To authorize access to the subscription server, request:
			// https://developers.google.com/instance-id/reference/server#parameters
			"https://www.googleapis.com/auth/firebase.messaging",
		}

		jwtConfig, err := google.JWTConfigFromJSON(serviceAccount, scope...)
		if err != nil {
			return nil, errors.Wrap(err, "jwt config")
		}

		c.jwtConfig = jwtConfig
	}

	return c, nil
}

// Subscribe adds the registration tokens to the topic.
// Per-token failures are data of the report, not an error of the call
func (c *Client) Subscribe(ctx context.Context, topicName string, tokens []string) (*Response, error) {
	return c.perform(ctx, subscribePath, topicName, tokens)
}

// Unsubscribe removes the registration tokens from the topic
func (c *Client) Unsubscribe(ctx context.Context, topicName string, tokens []string) (*Response, error) {
	return c.perform(ctx, unsubscribePath, topicName, tokens)
}

func (c *Client) perform(ctx context.Context, path, topicName string, tokens []string) (*Response, error) {

	req, err := c.newRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	message := NewRequest(topicName, tokens)

	pipe := provider.NewPipe(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(message)
	})
	defer pipe.Close()

	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	// token format:
	// https://firebase.google.com/docs/cloud-messaging/auth-server
	req.Header.Set("Authorization", token.Type()+" "+token.AccessToken)

	req.Body = pipe

	res, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer res.Body.Close()

	// the whole body is read before the status check
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &ServerError{
			StatusCode: res.StatusCode,
			Body:       string(body),
		}
	}

	retval := &serverResponse{}
	if err := provider.DecodeJSON(body, retval); err != nil {
		outInfo, errEncode := provider.JSONWithoutSecrets(message.WithoutSecrets())
		if errEncode != nil {
			outInfo = []byte(errEncode.Error())
		}

		return nil, &DecodeError{
			Cause: errors.Wrap(err, "source: "+string(outInfo)),
		}
	}

	return newResponse(retval.Results), nil
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {

	req, err := http.NewRequest(http.MethodPost, c.endpoint+"/"+path, nil)
	if err != nil {
		return nil, err
	}

	// marker of the access token based authorization:
	// https://developers.google.com/instance-id/reference/server#parameters
	req.Header.Set("access_token_auth", "true")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", "-1")
	req = req.WithContext(ctx)

	return req, nil
}

func (c *Client) getToken(ctx context.Context) (*oauth2.Token, error) {

	src := c.token.Load()
	if src != nil {
		token := src.(*oauth2.Token)
		if token.Valid() {
			return token, nil
		}
	}

	tokenSource := c.tokenSource
	if tokenSource == nil {
		tokenSource = c.jwtConfig.TokenSource(ctx)
	}

	token, err := tokenSource.Token()
	if err != nil {
		return nil, errors.Wrap(err, "authorization token")
	}

	c.token.Store(token)

	return token, nil
}
