// Package auth builds authorized Google Drive services.
package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/Jumpaku/go-drivemirror/config"
	derrors "github.com/Jumpaku/go-drivemirror/errors"
	"github.com/Jumpaku/go-drivemirror/jsonstore"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// NewService creates a drive.Service authorized according to cfg.
// When a client secret is configured and no token has been saved yet, the user is asked on out
// to visit a consent URL and paste the resulting code on in. Token writes are logged to logger,
// logrus.StandardLogger() when nil.
func NewService(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger logrus.FieldLogger) (*drive.Service, error) {
	switch {
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, derrors.NewIOError("failed to read credentials", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, drive.DriveScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials '%s': %w", cfg.CredentialsFile, err)
		}
		return newService(ctx, option.WithCredentials(creds))

	case cfg.ClientSecretFile != "":
		data, err := os.ReadFile(cfg.ClientSecretFile)
		if err != nil {
			return nil, derrors.NewIOError("failed to read client secret", err)
		}
		conf, err := google.ConfigFromJSON(data, drive.DriveScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse client secret '%s': %w", cfg.ClientSecretFile, err)
		}
		ts, err := TokenSource(ctx, conf, cfg.TokenFile, in, out, logger)
		if err != nil {
			return nil, err
		}
		return newService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))

	default:
		client, err := google.DefaultClient(ctx, drive.DriveScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		return newService(ctx, option.WithHTTPClient(client))
	}
}

func newService(ctx context.Context, opts ...option.ClientOption) (*drive.Service, error) {
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, derrors.NewAPIError("failed to create drive service", err)
	}
	return service, nil
}

// TokenSource returns a token source for conf backed by the token saved at tokenFile.
// A missing token file starts the consent flow. Refreshed tokens are written back to tokenFile.
func TokenSource(ctx context.Context, conf *oauth2.Config, tokenFile string, in io.Reader, out io.Writer, logger logrus.FieldLogger) (oauth2.TokenSource, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	tok := &oauth2.Token{}
	err := jsonstore.Read(tokenFile, tok)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		tok, err = exchange(ctx, conf, in, out)
		if err != nil {
			return nil, err
		}
		if err := jsonstore.Write(tokenFile, tok); err != nil {
			return nil, fmt.Errorf("failed to save token: %w", err)
		}
		logger.WithField("file", tokenFile).Info("Token saved")
	case err != nil:
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	return NewPersistingTokenSource(conf.TokenSource(ctx, tok), tokenFile, tok, logger), nil
}

func exchange(ctx context.Context, conf *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	url := conf.AuthCodeURL("drivemirror", oauth2.AccessTypeOffline)
	if _, err := fmt.Fprintf(out, "Open the following URL in a browser and paste the authorization code:\n%s\n", url); err != nil {
		return nil, derrors.NewIOError("failed to print consent URL", err)
	}
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, derrors.NewIOError("failed to read authorization code", err)
		}
		return nil, fmt.Errorf("no authorization code given: %w", derrors.ErrInvalidArgument)
	}
	code := strings.TrimSpace(sc.Text())
	if code == "" {
		return nil, fmt.Errorf("empty authorization code: %w", derrors.ErrInvalidArgument)
	}
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, derrors.NewAPIError("failed to exchange authorization code", err)
	}
	return tok, nil
}

type persistingTokenSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	path   string
	saved  string
	logger logrus.FieldLogger
}

// NewPersistingTokenSource wraps base and writes every newly issued token to path.
// last is the token already stored at path. A nil logger means logrus.StandardLogger().
func NewPersistingTokenSource(base oauth2.TokenSource, path string, last *oauth2.Token, logger logrus.FieldLogger) oauth2.TokenSource {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &persistingTokenSource{base: base, path: path, logger: logger}
	if last != nil {
		s.saved = last.AccessToken
	}
	return s
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.saved {
		if err := jsonstore.Write(s.path, tok); err != nil {
			return nil, fmt.Errorf("failed to save refreshed token: %w", err)
		}
		s.saved = tok.AccessToken
		s.logger.WithField("file", s.path).Debug("Refreshed token saved")
	}
	return tok, nil
}
