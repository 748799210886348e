package config

import (
	"github.com/spf13/viper"

	"geocoder-api/internal/models"
)

// StreetStyles holds the optional per-city street-name override tables:
// Normalize is applied before geocoding, Format only at display time.
// Both are keyed by lower-cased city name, then lower-cased street name.
type StreetStyles struct {
	Normalize models.StreetStyles `mapstructure:"normalize"`
	Format    models.StreetStyles `mapstructure:"format"`
}

// LoadStreetStyles reads the street-style override tables from a YAML
// file. An empty path means no overrides.
func LoadStreetStyles(path string) (styles StreetStyles, err error) {
	if path == "" {
		return
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	err = v.ReadInConfig()
	if err != nil {
		return
	}

	err = v.Unmarshal(&styles)
	return
}
