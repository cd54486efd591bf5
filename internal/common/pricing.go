package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// PricingFile seeds mutable system configuration: the Rs-per-ETH rate and
// the category suggestions shown to sellers. Categories stay free text on
// items; the list here is only a prompt.
type PricingFile struct {
	RsToEthRate float64  `yaml:"rs_to_eth_rate"`
	Categories  []string `yaml:"categories"`
}

func LoadPricingFile(pricingFile string) (*PricingFile, error) {
	var pricingPath string
	if filepath.IsAbs(pricingFile) {
		pricingPath = pricingFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		pricingPath = filepath.Join(wd, pricingFile)
	}

	data, err := os.ReadFile(pricingPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", pricingFile, err)
	}

	var pricing PricingFile
	if err := yaml.Unmarshal(data, &pricing); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", pricingFile, err)
	}

	if pricing.RsToEthRate <= 0 {
		return nil, fmt.Errorf("%s: rs_to_eth_rate must be positive, got %v", pricingFile, pricing.RsToEthRate)
	}

	return &pricing, nil
}
