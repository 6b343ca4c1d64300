package service

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	// ProjectID overrides the project_id of the service-account json.
	ProjectID string `mapstructure:"project-id"`

	// ServiceAccount is the path to the service-account json:
	// https://console.firebase.google.com/project/_/settings/serviceaccounts/adminsdk
	ServiceAccount string `mapstructure:"service-account"`

	SendTimeout time.Duration `mapstructure:"send-timeout"`
}

func NewConfig(src *viper.Viper) (*Config, error) {

	c := &Config{}
	if err := src.Unmarshal(c); err != nil {
		return nil, err
	}

	if len(c.ServiceAccount) == 0 {
		return nil, errors.New("invalid `service-account`")
	}

	if c.SendTimeout <= 0 {
		c.SendTimeout = time.Second * 10
	}

	return c, nil
}
