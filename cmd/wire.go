package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	apiadapter "github.com/bnema/walletdash/internal/adapters/api"
	chainstore "github.com/bnema/walletdash/internal/adapters/cache/chain"
	filestore "github.com/bnema/walletdash/internal/adapters/cache/file"
	memorystore "github.com/bnema/walletdash/internal/adapters/cache/memory"
	passstore "github.com/bnema/walletdash/internal/adapters/cache/pass"
	scopedstore "github.com/bnema/walletdash/internal/adapters/cache/scoped"
	tomlstore "github.com/bnema/walletdash/internal/adapters/cache/toml"
	profilerender "github.com/bnema/walletdash/internal/adapters/render/profile"
	"github.com/bnema/walletdash/internal/application"
	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/metrics"
	"github.com/bnema/walletdash/internal/ports"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const fileCacheDirName = "cache"

type wireOptions struct {
	verbose   bool
	ephemeral bool
}

type app struct {
	cfg           *viper.Viper
	baseURL       string
	cache         ports.KeyValueStore
	store         *application.SessionStore
	navigator     *application.Navigator
	notifications *application.NotificationCenter

	profileRenderer func(domain.UserProfile, profilerender.RenderOptions) (string, error)
	sessionRenderer func(domain.Session, profilerender.RenderOptions) (string, error)
	copyToClipboard func(string) error
	now             func() time.Time

	initialized bool
	initErr     error
}

func wireApp(opts wireOptions) (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := loadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	cache, err := newCacheStore(cfg, homeDir, opts.ephemeral)
	if err != nil {
		return nil, err
	}
	cache = scopedstore.NewStore(cache, scopedstore.Always(cfg.GetBool(storageEnabledKey)))

	baseURL := cfg.GetString(apiBaseURLKey)
	client := apiadapter.Client{
		API:            apiadapter.DefaultAPI(baseURL),
		HTTPClient:     &http.Client{Transport: metrics.NewRequestWatcher(nil)},
		RequestTimeout: cfg.GetDuration(apiTimeoutKey),
	}

	notifications := application.NewNotificationCenter(ports.SystemClock{})
	store := application.NewSessionStore(cache, client, notifications)

	return &app{
		cfg:             cfg,
		baseURL:         baseURL,
		cache:           cache,
		store:           store,
		navigator:       application.NewNavigator(store, application.NewGuard(routeTableFromConfig(cfg))),
		notifications:   notifications,
		profileRenderer: profilerender.RenderProfile,
		sessionRenderer: profilerender.RenderSession,
		copyToClipboard: clipboard.WriteAll,
		now:             time.Now,
	}, nil
}

func newCacheStore(cfg *viper.Viper, homeDir string, ephemeral bool) (ports.KeyValueStore, error) {
	if ephemeral {
		return memorystore.NewStore(), nil
	}

	namespace := cfg.GetString(storageNamespaceKey)
	fileRoot := cfg.GetString(storagePathKey)
	if fileRoot == "" {
		fileRoot = filepath.Join(homeDir, configDirName, fileCacheDirName)
	}

	switch backend := cfg.GetString(storageBackendKey); backend {
	case backendTOML, "":
		store, err := tomlstore.NewStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("wire toml cache: %w", err)
		}
		return store, nil
	case backendFile:
		return filestore.NewStore(fileRoot), nil
	case backendPass:
		return passstore.NewStore(namespace), nil
	case backendPassChain:
		store, err := chainstore.NewPassFirstWithFileFallback(namespace, fileRoot)
		if err != nil {
			return nil, fmt.Errorf("wire cache chain: %w", err)
		}
		return store, nil
	case backendMemory:
		return memorystore.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// initialize seeds the session from the cache once per process.
func (a *app) initialize(ctx context.Context) error {
	if !a.initialized {
		a.initialized = true
		a.initErr = a.store.Initialize(ctx)
	}
	return a.initErr
}

func (a *app) close() {
	a.store.Dispose()
	a.notifications.Close()

	if path := a.cfg.GetString(metricsTextfileKey); path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("export api metrics")
		}
	}
}
