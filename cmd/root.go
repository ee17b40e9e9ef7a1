package cmd

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spigell/hh-matcher/internal/ai"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/store/rediscache"
	"github.com/spigell/hh-matcher/internal/terms"
)

const (
	app = "hh-matcher"
)

type Config struct {
	LLM    *LLMConfig       `mapstructure:"llm"`
	Store  *StoreConfig     `mapstructure:"store"`
	Skills *SkillsConfig    `mapstructure:"skills"`
	Prompt ai.PromptOptions `mapstructure:"prompt"`
}

type LLMConfig struct {
	Provider     string        `mapstructure:"provider"`
	APIURL       string        `mapstructure:"api-url"`
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type StoreConfig struct {
	// Driver is one of memory, sqlite or postgres.
	Driver      string              `mapstructure:"driver"`
	DSN         string              `mapstructure:"dsn"`
	AutoMigrate bool                `mapstructure:"auto-migrate"`
	Redis       *rediscache.Options `mapstructure:"redis"`
}

type SkillsConfig struct {
	ExtraTerms []terms.Group `mapstructure:"extra-terms"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-matcher matches vacancies against resumes with keyword extraction and a language model",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"llm.api-url":      "LLM_API_URL",
		"llm.api-key":      "LLM_API_KEY",
		"llm.model":        "LLM_MODEL",
		"store.dsn":        "DATABASE_URL",
		"store.redis.addr": "REDIS_ADDR",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.timeout", 60*time.Second)
	viper.SetDefault("llm.max-log-length", logger.DefaultMaxLogLength)
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.dsn", app+".db")
	viper.SetDefault("store.auto-migrate", true)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("metrics-textfile", "", "write prometheus metrics to this file on exit")
	rootCmd.PersistentFlags().String("store-driver", "", "override store.driver (memory, sqlite, postgres)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("metrics-textfile", rootCmd.PersistentFlags().Lookup("metrics-textfile"))
	viper.BindPFlag("store.driver", rootCmd.PersistentFlags().Lookup("store-driver"))
}

func initConfig() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the file is optional.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.LLM == nil {
		config.LLM = &LLMConfig{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}
	if config.Skills == nil {
		config.Skills = &SkillsConfig{}
	}

	return config, nil
}
