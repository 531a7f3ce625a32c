package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"taskboard/internal/columns"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasks.db"
	DefaultLogName        = "taskboard.log"
	DefaultListenAddr     = "127.0.0.1:8787"
	DefaultEndpoint       = "http://" + DefaultListenAddr + "/api/tasks"
	DefaultTimeoutSeconds = 15
	DefaultPageSize       = 10
	DefaultRoute          = "/dashboard"

	envConfigPath = "TASKBOARD_CONFIG"
	appDirName    = "taskboard"
)

type Keymap struct {
	Quit        string `toml:"quit"`
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	Home        string `toml:"home"`
	End         string `toml:"end"`
	Select      string `toml:"select"`
	Cancel      string `toml:"cancel"`
	NextPage    string `toml:"next_page"`
	PrevPage    string `toml:"prev_page"`
	ColumnLeft  string `toml:"column_left"`
	ColumnRight string `toml:"column_right"`
	Sort        string `toml:"sort"`
	Search      string `toml:"search"`
	Filters     string `toml:"filters"`
	Reset       string `toml:"reset"`
	Columns     string `toml:"columns"`
	Refresh     string `toml:"refresh"`
	Dashboard   string `toml:"dashboard"`
	Table       string `toml:"table"`
	MoveUp      string `toml:"move_up"`
	MoveDown    string `toml:"move_down"`
}

type Config struct {
	Endpoint              string           `toml:"endpoint"`
	RequestTimeoutSeconds int              `toml:"request_timeout_seconds"`
	PageSize              int              `toml:"page_size"`
	DefaultRoute          string           `toml:"default_route"`
	LogPath               string           `toml:"log_path"`
	DBPath                string           `toml:"db_path"`
	ListenAddr            string           `toml:"listen_addr"`
	Keys                  Keymap           `toml:"keys"`
	Columns               []columns.Layout `toml:"columns"`
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ResolveConfigPath prefers $TASKBOARD_CONFIG, then the user config dir,
// then the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	fillDefaults(&cfg, filepath.Dir(path))
	return cfg, nil
}

func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func fillDefaults(cfg *Config, dir string) {
	def := defaultConfig(dir)
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = def.RequestTimeoutSeconds
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.DefaultRoute == "" {
		cfg.DefaultRoute = def.DefaultRoute
	}
	if cfg.LogPath == "" {
		cfg.LogPath = def.LogPath
	}
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	cfg.Keys = mergeKeys(cfg.Keys, def.Keys)
}

// mergeKeys keeps user bindings and fills any that are missing.
func mergeKeys(k, def Keymap) Keymap {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Keymap{
		Quit:        pick(k.Quit, def.Quit),
		Up:          pick(k.Up, def.Up),
		Down:        pick(k.Down, def.Down),
		Home:        pick(k.Home, def.Home),
		End:         pick(k.End, def.End),
		Select:      pick(k.Select, def.Select),
		Cancel:      pick(k.Cancel, def.Cancel),
		NextPage:    pick(k.NextPage, def.NextPage),
		PrevPage:    pick(k.PrevPage, def.PrevPage),
		ColumnLeft:  pick(k.ColumnLeft, def.ColumnLeft),
		ColumnRight: pick(k.ColumnRight, def.ColumnRight),
		Sort:        pick(k.Sort, def.Sort),
		Search:      pick(k.Search, def.Search),
		Filters:     pick(k.Filters, def.Filters),
		Reset:       pick(k.Reset, def.Reset),
		Columns:     pick(k.Columns, def.Columns),
		Refresh:     pick(k.Refresh, def.Refresh),
		Dashboard:   pick(k.Dashboard, def.Dashboard),
		Table:       pick(k.Table, def.Table),
		MoveUp:      pick(k.MoveUp, def.MoveUp),
		MoveDown:    pick(k.MoveDown, def.MoveDown),
	}
}

func Default() Config {
	return defaultConfig(".")
}

func defaultConfig(dir string) Config {
	return Config{
		Endpoint:              DefaultEndpoint,
		RequestTimeoutSeconds: DefaultTimeoutSeconds,
		PageSize:              DefaultPageSize,
		DefaultRoute:          DefaultRoute,
		LogPath:               filepath.Join(dir, DefaultLogName),
		DBPath:                filepath.Join(dir, DefaultDBName),
		ListenAddr:            DefaultListenAddr,
		Keys: Keymap{
			Quit:        "q",
			Up:          "k",
			Down:        "j",
			Home:        "g",
			End:         "G",
			Select:      "enter",
			Cancel:      "esc",
			NextPage:    "n",
			PrevPage:    "p",
			ColumnLeft:  "h",
			ColumnRight: "l",
			Sort:        "s",
			Search:      "/",
			Filters:     "f",
			Reset:       "x",
			Columns:     "c",
			Refresh:     "r",
			Dashboard:   "d",
			Table:       "t",
			MoveUp:      "K",
			MoveDown:    "J",
		},
	}
}
