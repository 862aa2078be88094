package service

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"realestate/app/auth"
	"realestate/app/config"
	"realestate/app/database"
	"realestate/app/logging"
	"realestate/app/repositories"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	envFile    string
	dbPath     string
	store      string
	addr       string
}

// load builds the configuration: defaults, file, .env and environment,
// then flags.
func (o *options) load() (*config.Config, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.Store.BadgerPath = o.dbPath
	}
	if o.store != "" {
		cfg.Store.Driver = o.store
	}
	if o.addr != "" {
		cfg.HTTP.Addr = o.addr
	}
	return cfg, nil
}

func (o *options) logger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
}

// backend is an open store plus the Mongo manager behind it, if any.
type backend struct {
	Store *repositories.Store
	Mongo *database.Manager
}

// openBackend opens the store selected by cfg.Store.Driver.
func openBackend(cfg *config.Config, logger zerolog.Logger) (*backend, error) {
	switch cfg.Store.Driver {
	case config.DriverBadger:
		db, err := repositories.OpenBadger(cfg.Store.BadgerPath)
		if err != nil {
			return nil, err
		}
		return &backend{Store: repositories.NewBadgerStore(db)}, nil
	case config.DriverMongo:
		m := database.NewManager(database.Options{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			ConnectTimeout: cfg.GetConnectTimeout(),
			MaxPoolSize:    cfg.Mongo.MaxPoolSize,
		}, logging.Component(logger, "database"))
		return &backend{Store: repositories.NewMongoStore(m), Mongo: m}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func (b *backend) Close(ctx context.Context) error {
	return b.Store.Close(ctx)
}

// newAuthenticator returns the session gate for cfg.Auth.Mode.
func newAuthenticator(cfg *config.Config) auth.Authenticator {
	if cfg.Auth.Mode == config.AuthNone {
		return auth.StaticAuthenticator{User: auth.User{ID: "local"}}
	}
	return auth.NewCookieAuthenticator(cfg.Auth.CookieName, []byte(cfg.Auth.JWTSecret))
}

// confirm asks a yes/no question on the command's streams.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
