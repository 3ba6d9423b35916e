package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Dan9191/emi-service/internal/calculator"
	"github.com/Dan9191/emi-service/internal/models"
)

type lenderFile struct {
	Lenders []models.LenderRate `yaml:"lenders"`
}

// LoadLenderRates reads the lender comparison table. An empty path yields the built-in table.
func LoadLenderRates(path string) ([]models.LenderRate, error) {
	if path == "" {
		return append([]models.LenderRate(nil), calculator.DefaultLenderRates...), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lender rates: %w", err)
	}
	return ParseLenderRates(raw)
}

// ParseLenderRates decodes a YAML lender table and validates every row
func ParseLenderRates(raw []byte) ([]models.LenderRate, error) {
	var file lenderFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lender rates: %w", err)
	}
	if len(file.Lenders) == 0 {
		return nil, fmt.Errorf("lender rates file has no lenders")
	}
	for i, l := range file.Lenders {
		if l.Name == "" {
			return nil, fmt.Errorf("lender #%d has no name", i+1)
		}
		if l.AnnualRatePercent <= 0 || math.IsNaN(l.AnnualRatePercent) || math.IsInf(l.AnnualRatePercent, 0) {
			return nil, fmt.Errorf("lender %q has invalid rate %v", l.Name, l.AnnualRatePercent)
		}
	}
	return file.Lenders, nil
}
