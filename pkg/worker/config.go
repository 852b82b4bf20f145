package worker

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	ProjectID    string `mapstructure:"project-id"`
	NopMode      bool   `mapstructure:"nop-mode"`
	CountThreads int    `mapstructure:"workers"`
}

func NewConfig(src *viper.Viper) (*Config, error) {

	c := &Config{}
	if err := src.Unmarshal(c); err != nil {
		return nil, err
	}

	if len(c.ProjectID) == 0 {
		return nil, errors.New("invalid `project-id`")
	}

	return c, nil
}
