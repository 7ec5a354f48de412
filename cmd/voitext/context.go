package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/voitext/internal/config"
	"github.com/nguyentantai21042004/voitext/internal/logger"
	"github.com/nguyentantai21042004/voitext/internal/pipeline"
	"github.com/nguyentantai21042004/voitext/pkg/executor"
)

const defaultConfigPath = "config.yaml"

// commandContext lazily loads configuration shared by all subcommands.
type commandContext struct {
	configFlag *string

	cfg *config.Config
	log logger.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads --config, or ./config.yaml when present, or defaults.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	path := *c.configFlag
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	default:
		return nil, fmt.Errorf("load config: %w", err)
	}

	c.cfg = cfg
	c.log = logger.New(cfg.Logging.Level)
	return cfg, nil
}

func (c *commandContext) logger() logger.Logger {
	if c.log == nil {
		return logger.New("info")
	}
	return c.log
}

func (c *commandContext) pipeline() (pipeline.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return pipeline.Build(cfg, executor.New(), c.logger())
}

func fileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("inspect file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
