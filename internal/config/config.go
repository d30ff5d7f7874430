package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config carries everything the CLI needs to run the layout pipeline
type Config struct {
	Geometry GeometryConfig
	Fonts    FontsConfig
	Logger   LoggerConfig
}

// GeometryConfig holds the page geometry constants in PDF points.
// Content budgets are derived from these, never hard-coded.
type GeometryConfig struct {
	PageWidth    float64
	PageHeight   float64
	Padding      float64
	HeaderHeight float64
	FooterHeight float64
	LineHeight   float64
	SafetyBuffer float64
}

// FontsConfig holds typography settings
type FontsConfig struct {
	Family      string
	Size        float64
	LineSpacing float64
	Directories []string
}

// LoggerConfig holds logger settings
type LoggerConfig struct {
	Env   string
	Level string
}

// Load reads examsheet.yaml from the working directory or ./config, with
// environment variable overrides. A missing config file is not an error;
// defaults describe an A4 page.
func Load() (*Config, error) {
	viper.SetConfigName("examsheet")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("geometry.page_width", 595.28)
	viper.SetDefault("geometry.page_height", 841.89)
	viper.SetDefault("geometry.padding", 36.0)
	viper.SetDefault("geometry.header_height", 110.0)
	viper.SetDefault("geometry.footer_height", 28.0)
	viper.SetDefault("geometry.line_height", 24.0)
	viper.SetDefault("geometry.safety_buffer", 6.0)
	viper.SetDefault("fonts.family", "Helvetica")
	viper.SetDefault("fonts.size", 12.0)
	viper.SetDefault("fonts.line_spacing", 1.4)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{
		Geometry: GeometryConfig{
			PageWidth:    viper.GetFloat64("geometry.page_width"),
			PageHeight:   viper.GetFloat64("geometry.page_height"),
			Padding:      viper.GetFloat64("geometry.padding"),
			HeaderHeight: viper.GetFloat64("geometry.header_height"),
			FooterHeight: viper.GetFloat64("geometry.footer_height"),
			LineHeight:   viper.GetFloat64("geometry.line_height"),
			SafetyBuffer: viper.GetFloat64("geometry.safety_buffer"),
		},
		Fonts: FontsConfig{
			Family:      viper.GetString("fonts.family"),
			Size:        viper.GetFloat64("fonts.size"),
			LineSpacing: viper.GetFloat64("fonts.line_spacing"),
			Directories: viper.GetStringSlice("fonts.directories"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
	}, nil
}
