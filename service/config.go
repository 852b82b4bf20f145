package service

import (
	"errors"
	"fmt"

	"github.com/dialogs/dialog-topic-service/pkg/worker/topic"
	"github.com/spf13/viper"
)

type Config struct {
	Topic     []*topic.Config `mapstructure:"-"`
	ApiPort   string          `mapstructure:"api-port"`
	AdminPort string          `mapstructure:"http-port"`
}

func NewConfig(src *viper.Viper) (*Config, error) {

	c := &Config{}
	err := src.Unmarshal(c)
	if err != nil {
		return nil, err
	}

	c.Topic, err = getTopicConfig(src)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func getTopicConfig(src *viper.Viper) ([]*topic.Config, error) {

	srcList, err := getConfigListByKey(src, "topic")
	if err != nil {
		return nil, err
	}

	retval := make([]*topic.Config, 0, len(srcList))
	for _, item := range srcList {
		cfg, err := topic.NewConfig(item)
		if err != nil {
			return nil, err
		}

		retval = append(retval, cfg)
	}

	return retval, nil
}

func getConfigListByKey(src *viper.Viper, key string) ([]*viper.Viper, error) {

	sub := src.Get(key)
	if sub == nil {
		return make([]*viper.Viper, 0), nil
	}

	arr, ok := sub.([]interface{})
	if !ok {
		return nil, errors.New("is not array:" + key)
	}

	retval := make([]*viper.Viper, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[interface{}]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid array item #%d: '%s'", i, key)
		}

		dest := viper.New()
		for k, v := range m {
			kStr, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("invalid key '%s.%v'", key, k)
			}

			dest.Set(kStr, v)
		}

		retval = append(retval, dest)
	}

	return retval, nil
}
