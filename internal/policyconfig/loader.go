package policyconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML policy file and returns the Config with raw bytes.
// KnownFields(true) makes typos and stale fields fail immediately.
func Load(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, data, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, data, err
	}

	return &cfg, data, nil
}

// Hash generates a SHA-256 hash of the Config from canonical JSON,
// used to stamp composite results with the policy they were fused under.
func Hash(cfg *Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// Default returns the policy used when no file is supplied, mirroring
// config/synthesis.yaml.
func Default() *Config {
	return &Config{
		Meta: Meta{
			PolicyID: "default",
			Version:  "1",
		},
		Composite: Composite{
			WeightsPct: map[string]int{
				"momentum":    20,
				"technical":   15,
				"fundamental": 25,
				"quality":     15,
				"risk":        15,
				"macro":       10,
			},
		},
		Sentiment: Sentiment{
			DeadbandPerCard: 0.5,
			HighAgreement:   0.75,
			MediumAgreement: 0.50,
		},
		Insights:        Insights{TopN: 8},
		Recommendations: Recommendations{Max: 6},
		Runner:          Runner{Workers: 8},
	}
}
