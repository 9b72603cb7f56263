package bough

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a transform manager and its frame pipeline.
type Config struct {
	// InitialCapacity preallocates storage for this many components.
	InitialCapacity int `yaml:"initial_capacity"`
	// Debug enables per-frame stats and tree depth warnings.
	Debug bool `yaml:"debug"`
	// LogLevel is a zerolog level name such as "info" or "debug".
	LogLevel string `yaml:"log_level"`
	// CheckCycles rejects SetParent calls that would form a cycle.
	CheckCycles bool `yaml:"check_cycles"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: defaultCapacity,
		LogLevel:        "info",
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, eris.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, eris.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.InitialCapacity < 0 {
		return eris.Errorf("initial_capacity must not be negative, got %d", c.InitialCapacity)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty string means info.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// Logger returns base filtered to the configured level.
func (c Config) Logger(base zerolog.Logger) zerolog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return base.Level(lvl)
}

// NewTransformManagerFromConfig builds a manager from cfg. Extra options are
// applied after the configured ones.
func NewTransformManagerFromConfig(cfg Config, log zerolog.Logger, opts ...Option) *TransformManager {
	base := []Option{
		WithLogger(cfg.Logger(log)),
		WithCapacity(cfg.InitialCapacity),
		WithCycleChecks(cfg.CheckCycles),
	}
	return NewTransformManager(append(base, opts...)...)
}

// Apply pushes the runtime-adjustable parts of cfg into a running pipeline.
// Capacity only takes effect at construction.
func (c Config) Apply(u *UpdateManager) {
	u.SetDebugMode(c.Debug)
	u.log = c.Logger(u.log)
	u.transforms.checkCycles = c.CheckCycles
	u.transforms.log = c.Logger(u.transforms.log)
}

const configDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a config file when it changes on disk. The parent
// directory is watched so editors that replace the file are seen.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	Configs chan Config
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchConfig starts watching path.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, eris.Wrapf(err, "resolve config path %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, eris.Wrap(err, "create config watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, eris.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		Configs: make(chan Config, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher and closes the Configs and Errors channels.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer func() {
		close(w.Configs)
		close(w.Errors)
		close(w.done)
	}()

	// Reload once the file has been quiet for configDebounce; a single save
	// often arrives as truncate plus write.
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(configDebounce)
			} else {
				timer.Reset(configDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(&cfg, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, eris.Wrap(err, "config watcher"))
		case <-w.closeCh:
			return
		}
	}
}

func (w *ConfigWatcher) send(cfg *Config, err error) {
	if cfg != nil {
		select {
		case w.Configs <- *cfg:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
