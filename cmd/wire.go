package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	assistantadapter "github.com/dlyog/dl-creator-cli/internal/adapters/assistant"
	backendadapter "github.com/dlyog/dl-creator-cli/internal/adapters/backend"
	licenserender "github.com/dlyog/dl-creator-cli/internal/adapters/render/license"
	tomlrepo "github.com/dlyog/dl-creator-cli/internal/adapters/repo/toml"
	chainstore "github.com/dlyog/dl-creator-cli/internal/adapters/secrets/chain"
	filestore "github.com/dlyog/dl-creator-cli/internal/adapters/secrets/file"
	passstore "github.com/dlyog/dl-creator-cli/internal/adapters/secrets/pass"
	"github.com/dlyog/dl-creator-cli/internal/application"
	"github.com/dlyog/dl-creator-cli/internal/config"
	"github.com/dlyog/dl-creator-cli/internal/logging"
	"github.com/dlyog/dl-creator-cli/internal/ports"
	"github.com/dlyog/dl-creator-cli/internal/version"
)

const homeDirMode = 0o700

type app struct {
	cfg       config.Config
	logger    zerolog.Logger
	session   *application.SessionStore
	auth      *application.AuthService
	resolver  *application.LicenseResolver
	assistant ports.AssistantAPI
	router    *router
	render    func(licenserender.View) (string, error)
	clock     ports.Clock
}

// wire builds the adapters and services for one command invocation.
func (a *app) wire(ctx context.Context, out io.Writer, errOut io.Writer, verbose bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}

	logger := logging.New(errOut, cfg.Verbose)

	if err := os.MkdirAll(cfg.Home, homeDirMode); err != nil {
		return fmt.Errorf("create home directory: %w", err)
	}

	secretStore, err := newSecretStore(cfg)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	repo, err := tomlrepo.NewRepository(viper.New(), cfg.Home)
	if err != nil {
		return fmt.Errorf("wire state repository: %w", err)
	}

	session := application.NewSessionStore(secretStore, repo, application.UUIDIdentity{}, logger)
	if err := session.Load(ctx); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	httpClient := &http.Client{}
	backend := backendadapter.Client{
		BaseURL:        cfg.APIURL,
		HTTPClient:     httpClient,
		RequestTimeout: cfg.RequestTimeout,
		UserAgent:      "dlc/" + version.Version,
	}

	a.cfg = cfg
	a.logger = logger
	a.session = session
	a.auth = application.NewAuthService(backend, session, logger)
	a.resolver = application.NewLicenseResolver(backend, session, logger)
	a.assistant = assistantadapter.Client{
		BaseURL:        cfg.AssistantURL,
		HTTPClient:     httpClient,
		RequestTimeout: cfg.RequestTimeout,
	}
	if a.render == nil {
		a.render = licenserender.Render
	}
	if a.clock == nil {
		a.clock = ports.SystemClock{}
	}
	a.router = newRouter(ctx, a, out, errOut)
	session.SetNavigator(a.router)
	session.OnClear(a.resolver.Forget)

	return nil
}

func newSecretStore(cfg config.Config) (ports.SecretStore, error) {
	switch cfg.SecretBackend {
	case config.SecretBackendPass:
		return passstore.NewStore(cfg.PassDir), nil
	case config.SecretBackendFile:
		return filestore.NewStore(cfg.SecretsDir()), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.PassDir, cfg.SecretsDir())
	}
}

func (a *app) pipelineConfig() application.PipelineConfig {
	return application.PipelineConfig{
		ReplyStagger:   a.cfg.ReplyStagger,
		FallbackDelay:  a.cfg.FallbackDelay,
		RequestTimeout: a.cfg.RequestTimeout,
	}
}
