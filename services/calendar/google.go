package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleGateway books events through the Google Calendar API. The OAuth
// token is cached as a JSON blob on disk and silently refreshed; a cache
// that cannot be refreshed is deleted so the next Authenticate forces a
// fresh interactive authorization.
type GoogleGateway struct {
	oauthConfig *oauth2.Config
	tokenFile   string
	calendarID  string
	timeout     time.Duration
	logger      *zap.Logger

	service *gcal.Service
}

// NewGoogleGateway reads the OAuth client configuration from
// credentialsFile. A missing or malformed file is a *ConfigError and
// stops the booking path before any conversation starts.
func NewGoogleGateway(credentialsFile, tokenFile, calendarID string, timeout time.Duration, logger *zap.Logger) (*GoogleGateway, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, &ConfigError{Path: credentialsFile, Err: err}
	}
	cfg, err := google.ConfigFromJSON(data, gcal.CalendarScope)
	if err != nil {
		return nil, &ConfigError{Path: credentialsFile, Err: err}
	}
	return &GoogleGateway{
		oauthConfig: cfg,
		tokenFile:   tokenFile,
		calendarID:  calendarID,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// Authenticate loads the cached token, refreshes it when expired, and
// builds the calendar service. A missing, corrupt, or unrefreshable token
// is discarded and reported as *AuthError so the caller can run the
// interactive flow (AuthCodeURL + Exchange).
func (g *GoogleGateway) Authenticate(ctx context.Context) error {
	tok, err := g.loadToken()
	if err != nil {
		if !os.IsNotExist(err) {
			g.logger.Warn("discarding unreadable token cache", zap.String("file", g.tokenFile), zap.Error(err))
			g.discardToken()
		}
		return &AuthError{Err: fmt.Errorf("no cached credential: %w", err)}
	}

	tokenSource := g.oauthConfig.TokenSource(ctx, tok)
	newTok, err := tokenSource.Token()
	if err != nil {
		g.logger.Warn("token refresh failed, discarding token cache", zap.Error(err))
		g.discardToken()
		return &AuthError{Err: err}
	}
	if newTok.AccessToken != tok.AccessToken {
		g.logger.Info("calendar token refreshed")
		if err := g.saveToken(newTok); err != nil {
			return &AuthError{Err: fmt.Errorf("failed to persist refreshed token: %w", err)}
		}
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(g.oauthConfig.Client(ctx, newTok)))
	if err != nil {
		return &AuthError{Err: fmt.Errorf("failed to create calendar service: %w", err)}
	}
	g.service = service
	return nil
}

// AuthCodeURL returns the URL the operator must visit to authorize the app.
func (g *GoogleGateway) AuthCodeURL() string {
	return g.oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Exchange redeems an authorization code for a token and caches it.
func (g *GoogleGateway) Exchange(ctx context.Context, authCode string) error {
	tok, err := g.oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return &AuthError{Err: fmt.Errorf("failed to exchange authorization code: %w", err)}
	}
	if err := g.saveToken(tok); err != nil {
		return &AuthError{Err: err}
	}
	g.service = nil
	return nil
}

// CreateEvent inserts one event on the configured calendar. The call is
// bounded by the configured timeout; a timeout surfaces as *CreationError
// like any other provider failure.
func (g *GoogleGateway) CreateEvent(ctx context.Context, req EventRequest) (*Confirmation, error) {
	if g.service == nil {
		if err := g.Authenticate(ctx); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	event := &gcal.Event{
		Summary: req.Summary,
		Start: &gcal.EventDateTime{
			DateTime: req.Start.ISO8601(),
			TimeZone: req.TimeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: req.End.ISO8601(),
			TimeZone: req.TimeZone,
		},
	}

	created, err := g.service.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		if isInvalidGrant(err) {
			g.logger.Warn("invalid grant from calendar API, discarding token cache", zap.Error(err))
			g.discardToken()
			g.service = nil
			return nil, &CreationError{InvalidGrant: true, Err: err}
		}
		return nil, &CreationError{Err: err}
	}

	g.logger.Info("calendar event created",
		zap.String("eventId", created.Id),
		zap.String("summary", req.Summary))
	return &Confirmation{EventID: created.Id, HTMLLink: created.HtmlLink}, nil
}

func (g *GoogleGateway) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(g.tokenFile)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token cache: %w", err)
	}
	return &tok, nil
}

func (g *GoogleGateway) saveToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(g.tokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	return nil
}

func (g *GoogleGateway) discardToken() {
	if err := os.Remove(g.tokenFile); err != nil && !os.IsNotExist(err) {
		g.logger.Warn("failed to remove token cache", zap.String("file", g.tokenFile), zap.Error(err))
	}
}
