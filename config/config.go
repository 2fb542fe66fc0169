package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pokerd/pokerd"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "POKERD"

var (
	ErrInvalidTokens = errors.New("config: invalid auth tokens")
)

type Config struct {
	HTTP       HTTPConfig       `json:"http"`
	Log        LogConfig        `json:"log"`
	Table      TableConfig      `json:"table"`
	Settlement SettlementConfig `json:"settlement"`
	Auth       AuthConfig       `json:"auth"`
}

type HTTPConfig struct {
	Addr string `json:"addr"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

type TableConfig struct {
	SmallBlind      int64         `json:"small_blind"`
	BigBlind        int64         `json:"big_blind"`
	SeatCapacity    int           `json:"seat_capacity"`
	MinBuyIn        int64         `json:"min_buy_in"`
	MaxBuyIn        int64         `json:"max_buy_in"`
	ActionTimeout   time.Duration `json:"action_timeout"`
	NextHandTimeout time.Duration `json:"next_hand_timeout"`
	AutoStartHands  bool          `json:"auto_start_hands"`
}

type SettlementConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type AuthConfig struct {
	Tokens map[string]string `json:"tokens"` // key: bearer token, value: player_id
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("table.small_blind", pokerd.DefaultSmallBlind)
	v.SetDefault("table.big_blind", pokerd.DefaultBigBlind)
	v.SetDefault("table.seat_capacity", pokerd.DefaultSeatCapacity)
	v.SetDefault("table.min_buy_in", 0)
	v.SetDefault("table.max_buy_in", 0)
	v.SetDefault("table.action_timeout", 30*time.Second)
	v.SetDefault("table.next_hand_timeout", 5*time.Second)
	v.SetDefault("table.auto_start_hands", true)
	v.SetDefault("settlement.driver", "none")
	v.SetDefault("settlement.dsn", "")
	v.SetDefault("auth.tokens", "")
}

/*
Load 讀取設定
  - 先載入 .env (不存在時略過)
  - 環境變數前綴 POKERD，例如 POKERD_HTTP_ADDR
  - path 不為空時讀取設定檔
*/
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	tokens, err := parseTokens(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr: v.GetString("http.addr"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Pretty: v.GetBool("log.pretty"),
		},
		Table: TableConfig{
			SmallBlind:      v.GetInt64("table.small_blind"),
			BigBlind:        v.GetInt64("table.big_blind"),
			SeatCapacity:    v.GetInt("table.seat_capacity"),
			MinBuyIn:        v.GetInt64("table.min_buy_in"),
			MaxBuyIn:        v.GetInt64("table.max_buy_in"),
			ActionTimeout:   v.GetDuration("table.action_timeout"),
			NextHandTimeout: v.GetDuration("table.next_hand_timeout"),
			AutoStartHands:  v.GetBool("table.auto_start_hands"),
		},
		Settlement: SettlementConfig{
			Driver: v.GetString("settlement.driver"),
			DSN:    v.GetString("settlement.dsn"),
		},
		Auth: AuthConfig{
			Tokens: tokens,
		},
	}

	if err := cfg.TableSetting().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseTokens accepts a map from a config file or "token=player,token=player" from the environment.
func parseTokens(v *viper.Viper) (map[string]string, error) {
	if tokens := v.GetStringMapString("auth.tokens"); len(tokens) > 0 {
		return tokens, nil
	}

	tokens := make(map[string]string)
	raw := strings.TrimSpace(v.GetString("auth.tokens"))
	if raw == "" {
		return tokens, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		token, playerID, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || token == "" || playerID == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTokens, pair)
		}
		tokens[token] = playerID
	}
	return tokens, nil
}

func (c *Config) TableSetting() pokerd.TableSetting {
	return pokerd.TableSetting{
		SmallBlind:   c.Table.SmallBlind,
		BigBlind:     c.Table.BigBlind,
		SeatCapacity: c.Table.SeatCapacity,
		MinBuyIn:     c.Table.MinBuyIn,
		MaxBuyIn:     c.Table.MaxBuyIn,
	}
}

func (c *Config) EngineOptions(logger zerolog.Logger, settler pokerd.Settler) *pokerd.TableEngineOptions {
	options := pokerd.NewTableEngineOptions()
	options.Logger = logger
	options.ActionTimeout = c.Table.ActionTimeout
	options.NextHandTimeout = int(c.Table.NextHandTimeout / time.Second)
	options.AutoStartHands = c.Table.AutoStartHands
	options.Settler = settler
	return options
}

// LogLevel falls back to info on an unknown level.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
