package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// userSettings is the user-level configuration file layout.
type userSettings struct {
	Java    string        `mapstructure:"java"`
	Jar     string        `mapstructure:"jar"`
	JVMArgs []string      `mapstructure:"jvm_args"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UserConfigDir returns the directory holding the user config.yaml.
func UserConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vnupipe")
}

// LoadUserSettings resolves the validator location from config.yaml in
// configDir and the VNUPIPE_JAVA, VNUPIPE_JAR, VNUPIPE_JVM_ARGS and
// VNUPIPE_TIMEOUT environment variables. Environment values win. A missing
// config file is not an error.
func LoadUserSettings(configDir string) (domain.ValidatorSettings, error) {
	v := viper.New()
	setDefaults(v)

	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return domain.ValidatorSettings{}, fmt.Errorf("reading user config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("VNUPIPE")
	v.AutomaticEnv()
	_ = v.BindEnv("java", "VNUPIPE_JAVA")
	_ = v.BindEnv("jar", "VNUPIPE_JAR")
	_ = v.BindEnv("jvm_args", "VNUPIPE_JVM_ARGS")
	_ = v.BindEnv("timeout", "VNUPIPE_TIMEOUT")

	var s userSettings
	if err := v.Unmarshal(&s); err != nil {
		return domain.ValidatorSettings{}, fmt.Errorf("decoding user config: %w", err)
	}
	if s.Timeout < 0 {
		return domain.ValidatorSettings{}, fmt.Errorf("timeout must not be negative (got %s)", s.Timeout)
	}

	return domain.ValidatorSettings{
		Java:    s.Java,
		Jar:     s.Jar,
		JVMArgs: s.JVMArgs,
		Timeout: s.Timeout,
	}, nil
}

func setDefaults(v *viper.Viper) {
	defaults := domain.DefaultValidatorSettings()
	v.SetDefault("java", defaults.Java)
	v.SetDefault("jar", defaults.Jar)
	v.SetDefault("jvm_args", domain.DefaultJVMArgs)
	v.SetDefault("timeout", "0s")
}
