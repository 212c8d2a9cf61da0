// Config loading for the blogmeta CLI. Values resolve in the usual
// precedence: flags, then BLOGMETA_* environment variables, then the
// config file, then defaults.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	cfgKeyDriver  = "driver"
	cfgKeyDSN     = "dsn"
	cfgKeyPrefix  = "prefix"
	cfgKeyCharset = "charset"
	cfgKeyCollate = "collate"

	defaultDriver = "sqlite"
	defaultDSN    = "blogmeta.db"
	defaultPrefix = "wp_"
)

// loadConfig builds the viper instance backing the CLI. A missing config
// file is not an error; flags and environment still apply.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDriver, defaultDriver)
	v.SetDefault(cfgKeyDSN, defaultDSN)
	v.SetDefault(cfgKeyPrefix, defaultPrefix)

	v.SetEnvPrefix("BLOGMETA")
	v.AutomaticEnv()

	if err := v.BindPFlag(cfgKeyDriver, cmd.Flags().Lookup("driver")); err != nil {
		return nil, fmt.Errorf("bind driver flag: %w", err)
	}
	if err := v.BindPFlag(cfgKeyDSN, cmd.Flags().Lookup("dsn")); err != nil {
		return nil, fmt.Errorf("bind dsn flag: %w", err)
	}
	if err := v.BindPFlag(cfgKeyPrefix, cmd.Flags().Lookup("prefix")); err != nil {
		return nil, fmt.Errorf("bind prefix flag: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".blogmeta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
