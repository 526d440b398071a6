// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	. "github.com/black-desk/lib/go/errwrap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Opt func(*Config) (*Config, error)

// New loads a configuration from YAML content.
// Fields missing from the content keep the values of DefaultConfig.
func New(opts ...Opt) (ret *Config, err error) {
	defer Wrap(&err, "load configuration")

	cfg := &Config{}

	for i := range opts {
		cfg, err = opts[i](cfg)
		if err != nil {
			return
		}
	}

	if cfg.log == nil {
		cfg.log = zap.NewNop().Sugar()
	}

	err = yaml.Unmarshal([]byte(DefaultConfig), cfg)
	if err != nil {
		Wrap(&err, "unmarshal default configuration")
		return
	}

	if len(cfg.raw) != 0 {
		err = yaml.Unmarshal(cfg.raw, cfg)
		if err != nil {
			Wrap(&err, "unmarshal configuration")
			return
		}
	}

	err = cfg.Check()
	if err != nil {
		return
	}

	ret = cfg
	return
}

func WithContent(content []byte) Opt {
	return func(cfg *Config) (ret *Config, err error) {
		cfg.raw = content
		ret = cfg
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(cfg *Config) (ret *Config, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		cfg.log = log
		ret = cfg
		return
	}
}
