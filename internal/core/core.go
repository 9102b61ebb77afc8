package core

import (
	"fmt"

	"github.com/agubarev/groupsync/pkg/database"
	"github.com/agubarev/groupsync/pkg/directory"
	"github.com/agubarev/groupsync/pkg/membership"
	"github.com/agubarev/groupsync/pkg/platform"
	"github.com/agubarev/groupsync/pkg/registry"
	"github.com/asaskevich/govalidator"
	"github.com/gocraft/dbr/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config assembles everything the run needs to reach its collaborators
type Config struct {
	LDAP        directory.LDAPConfig
	RegistryDSN string `valid:"required"`
	PlatformDSN string `valid:"required"`

	Debug  bool   `valid:"-"`
	LogDir string `valid:"-"`
}

// Validate performs general field validations on the configuration
func (c Config) Validate() error {
	if ok, err := govalidator.ValidateStruct(c); !ok || err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%s", err)
	}

	return nil
}

// Core wires the directory client, the registry store and the platform
// store into a ready-to-run syncer, and owns their lifetimes
type Core struct {
	config Config

	directory    *directory.LDAPClient
	registry     registry.Store
	platform     platform.Store
	syncer       *membership.Syncer
	registryConn *dbr.Connection
	platformConn *dbr.Connection

	logger *zap.Logger
}

// New connects to all three collaborators and assembles the core
// NOTE: any failure here is fatal; there is no degraded mode
func New(config Config) (c *Core, err error) {
	if err = config.Validate(); err != nil {
		return nil, err
	}

	c = &Core{config: config}

	//---------------------------------------------------------------------------
	// directory service
	//---------------------------------------------------------------------------
	c.directory, err = directory.Connect(config.LDAP)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to directory service")
	}

	//---------------------------------------------------------------------------
	// study registry
	//---------------------------------------------------------------------------
	c.registryConn, err = database.Connect(config.RegistryDSN)
	if err != nil {
		c.Close()
		return nil, errors.Wrap(err, "failed to connect to study registry")
	}

	c.registry, err = registry.NewMySQLStore(c.registryConn)
	if err != nil {
		c.Close()
		return nil, err
	}

	//---------------------------------------------------------------------------
	// platform permission database
	//---------------------------------------------------------------------------
	c.platformConn, err = database.Connect(config.PlatformDSN)
	if err != nil {
		c.Close()
		return nil, errors.Wrap(err, "failed to connect to platform database")
	}

	c.platform, err = platform.NewMySQLStore(c.platformConn)
	if err != nil {
		c.Close()
		return nil, err
	}

	//---------------------------------------------------------------------------
	// the syncer itself
	//---------------------------------------------------------------------------
	c.syncer, err = membership.NewSyncer(c.directory, c.registry, c.platform)
	if err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

// SetLogger setting a primary logger for the core and its components
func (c *Core) SetLogger(logger *zap.Logger) error {
	if logger != nil {
		logger = logger.Named("[groupsync]")

		if err := c.directory.SetLogger(logger); err != nil {
			return err
		}

		if err := c.syncer.SetLogger(logger); err != nil {
			return err
		}
	}

	c.logger = logger

	return nil
}

// Logger returns primary logger if is set, otherwise initializing and returning
// a new default emergency logger
// NOTE: will panic if it finally fails to obtain a logger
func (c *Core) Logger() *zap.Logger {
	if c.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			// having a working logger is crucial, thus must panic() if initialization fails
			panic(fmt.Errorf("failed to initialize core logger: %s", err))
		}

		c.logger = l
	}

	return c.logger
}

// Syncer returns the assembled syncer
func (c *Core) Syncer() (*membership.Syncer, error) {
	if c.syncer == nil {
		return nil, ErrNilSyncer
	}

	return c.syncer, nil
}

// PlatformStore returns the platform store, used by the latency probe
func (c *Core) PlatformStore() (platform.Store, error) {
	if c.platform == nil {
		return nil, ErrNotInitialized
	}

	return c.platform, nil
}

// Close releases every collaborator session
func (c *Core) Close() error {
	if c == nil {
		return ErrNilCore
	}

	if c.directory != nil {
		if err := c.directory.Close(); err != nil {
			return err
		}
	}

	if c.registryConn != nil {
		if err := c.registryConn.Close(); err != nil {
			return err
		}
	}

	if c.platformConn != nil {
		if err := c.platformConn.Close(); err != nil {
			return err
		}
	}

	return nil
}
