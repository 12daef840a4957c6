package netcdf

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Config holds storage and logging settings loaded from a TOML file:
//
//	compression = "zstd"
//	level = 3
//	shuffle = true
//	checksum = true
//	byte_order = "little"
//	offset_size = 8
//	log_level = "info"
type Config struct {
	Compression string `toml:"compression"`
	Level       int    `toml:"level"`
	Shuffle     bool   `toml:"shuffle"`
	Checksum    bool   `toml:"checksum"`
	ByteOrder   string `toml:"byte_order"`
	OffsetSize  int    `toml:"offset_size"`
	LogLevel    string `toml:"log_level"`
}

// LoadConfig reads a Config from a TOML file. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("loading config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// ParseLogLevel returns the configured log level, Info when unset.
func (c *Config) ParseLogLevel() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}

// Options converts the storage settings to Create options.
func (c *Config) Options() ([]Option, error) {
	codec, err := ParseCodec(c.Compression)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithCompression(codec, c.Level)}
	if c.Shuffle {
		opts = append(opts, WithShuffle())
	}
	if c.Checksum {
		opts = append(opts, WithChecksum())
	}
	switch strings.ToLower(c.ByteOrder) {
	case "", "little":
		opts = append(opts, WithByteOrder(binary.LittleEndian))
	case "big":
		opts = append(opts, WithByteOrder(binary.BigEndian))
	default:
		return nil, fmt.Errorf("unknown byte order %q", c.ByteOrder)
	}
	if c.OffsetSize != 0 {
		if c.OffsetSize != 2 && c.OffsetSize != 4 && c.OffsetSize != 8 {
			return nil, fmt.Errorf("offset size %d: must be 2, 4, or 8", c.OffsetSize)
		}
		opts = append(opts, WithOffsetSize(c.OffsetSize))
	}
	return opts, nil
}
