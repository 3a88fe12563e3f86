package cli

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netscene/pkg/cache"
	"github.com/matzehuels/netscene/pkg/config"
	"github.com/matzehuels/netscene/pkg/errors"
)

// fileConfig is the content of a --config file. Editor settings sit at the
// top level; the [cache.redis] table selects a shared artifact cache.
//
//	show_device_names = false
//	texture_dir = "textures"
//
//	[grid]
//	x = 0.25
//
//	[cache]
//	scope = "campus-a:"
//
//	[cache.redis]
//	addr = "localhost:6379"
//	prefix = "netscene:"
type fileConfig struct {
	Settings config.Settings `toml:"-"`
	Cache    cacheConfig     `toml:"cache"`

	set bool // a file was given
}

type cacheConfig struct {
	Scope string            `toml:"scope"` // key prefix for caches shared between projects
	Redis cache.RedisConfig `toml:"redis"`
}

// loadConfig reads the file named by --config. Without one it returns the
// default settings.
func (c *CLI) loadConfig() (fileConfig, error) {
	cfg := fileConfig{Settings: config.Default()}
	if c.configPath == "" {
		return cfg, nil
	}
	return readConfig(c.configPath)
}

func readConfig(path string) (fileConfig, error) {
	settings, err := config.LoadFile(path)
	if err != nil {
		return fileConfig{}, err
	}
	cfg := fileConfig{Settings: settings, set: true}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	return cfg, nil
}
