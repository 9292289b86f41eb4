package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/walletdash/internal/application"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".walletdash"
	configFileName = "config"
	envPrefix      = "WALLETDASH"
)

const (
	apiBaseURLKey       = "api.base_url"
	apiTimeoutKey       = "api.timeout"
	storageBackendKey   = "storage.backend"
	storagePathKey      = "storage.path"
	storageNamespaceKey = "storage.namespace"
	storageEnabledKey   = "storage.enabled"
	routesPublicKey     = "routes.public"
	routesProtectedKey  = "routes.protected"
	routesAdminKey      = "routes.admin"
	metricsTextfileKey  = "metrics.textfile"
)

const (
	backendTOML      = "toml"
	backendFile      = "file"
	backendPass      = "pass"
	backendPassChain = "pass-chain"
	backendMemory    = "memory"
)

func loadConfig(homeDir string) (*viper.Viper, error) {
	cfg := viper.New()
	cfg.SetConfigName(configFileName)
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	cfg.AutomaticEnv()

	routes := application.DefaultRouteTable()
	cfg.SetDefault(apiBaseURLKey, "http://localhost:3000")
	cfg.SetDefault(apiTimeoutKey, 30*time.Second)
	cfg.SetDefault(storageBackendKey, backendTOML)
	cfg.SetDefault(storageNamespaceKey, "walletdash")
	cfg.SetDefault(storageEnabledKey, true)
	cfg.SetDefault(routesPublicKey, routes.Public)
	cfg.SetDefault(routesProtectedKey, routes.Protected)
	cfg.SetDefault(routesAdminKey, routes.Admin)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return cfg, nil
}

func routeTableFromConfig(cfg *viper.Viper) application.RouteTable {
	return application.RouteTable{
		Public:    cfg.GetStringSlice(routesPublicKey),
		Protected: cfg.GetStringSlice(routesProtectedKey),
		Admin:     cfg.GetStringSlice(routesAdminKey),
	}
}

func configureLogging(output io.Writer, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		NoColor:    true,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}
