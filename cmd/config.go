package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appdefaults "github.com/athenahq/athena/internal/config"
	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/types"
)

const (
	configName = ".athena"
	envPrefix  = "ATHENA"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance; it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. It's okay if it doesn't exist.
	_ = godotenv.Load()

	// Environment variable handling must be set up BEFORE reading the config
	// file, so env vars can influence config loading.
	viper.SetEnvPrefix(envPrefix) // e.g., ATHENA_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	// The project config dir must be known before the full unmarshal, to
	// locate the config file itself.
	potentialProjectConfigDir := viper.GetString("project.rootDir")
	if potentialProjectConfigDir == "" {
		potentialProjectConfigDir = appdefaults.DefaultRootDir
	}

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if _, err := os.Stat(potentialProjectConfigDir); !os.IsNotExist(err) {
			// Project-specific config directory exists. Prioritize it.
			viper.AddConfigPath(potentialProjectConfigDir) // ./.athena/.athena.yaml
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home) // $HOME/.athena.yaml
			viper.AddConfigPath(".")  // ./.athena.yaml
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Set default values
	viper.SetDefault("project.rootDir", appdefaults.DefaultRootDir)
	viper.SetDefault("project.templatesDir", appdefaults.DefaultTemplatesDir)
	viper.SetDefault("data.seedFile", "")
	viper.SetDefault("data.seedFormat", "")
	viper.SetDefault("server.port", appdefaults.DefaultServerPort)

	// Defaults for LLMConfig
	viper.SetDefault("llm.provider", appdefaults.DefaultProvider)
	viper.SetDefault("llm.modelName", appdefaults.DefaultGeminiModel)
	viper.SetDefault("llm.analysisModelName", appdefaults.DefaultGeminiAnalysisModel)
	viper.SetDefault("llm.apiKey", "")
	viper.SetDefault("llm.maxOutputTokens", 16384)
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.requestTimeoutSeconds", 60)

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// A config file may exist but miss these nested keys.
	if GlobalAppConfig.Project.RootDir == "" {
		GlobalAppConfig.Project.RootDir = viper.GetString("project.rootDir")
	}
	if GlobalAppConfig.Project.TemplatesDir == "" {
		GlobalAppConfig.Project.TemplatesDir = viper.GetString("project.templatesDir")
	}
	if GlobalAppConfig.LLM.ModelName == "" && GlobalAppConfig.LLM.Provider != "" {
		GlobalAppConfig.LLM.ModelName = appdefaults.DefaultModelForProvider(GlobalAppConfig.LLM.Provider)
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// TemplatesPath returns the absolute prompt-template override directory.
func TemplatesPath() string {
	config := GetConfig()
	if filepath.IsAbs(config.Project.TemplatesDir) {
		return config.Project.TemplatesDir
	}
	return filepath.Join(config.Project.RootDir, config.Project.TemplatesDir)
}

// TeamRoster returns the configured team, or the built-in default roster when
// the config file does not define one.
func TeamRoster() []models.TeamMember {
	config := GetConfig()
	if len(config.Team) == 0 {
		return appdefaults.DefaultTeam()
	}
	roster := make([]models.TeamMember, 0, len(config.Team))
	for _, m := range config.Team {
		roster = append(roster, models.TeamMember{
			ID:   m.ID,
			Name: m.Name,
			Role: models.Role(m.Role),
		})
	}
	return roster
}
