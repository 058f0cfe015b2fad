package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mwei/irdigest/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage irdigest configuration",
	Long: `Manage irdigest configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (IRDIGEST_*)
3. Config file (~/.irdigest/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if path := viper.ConfigFileUsed(); path != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", path)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.irdigest/config.yaml, including an example companies section to edit.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.irdigest"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'irdigest config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		cfg := model.DefaultConfig()
		cfg.Companies = exampleCompanies()

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		header := `# irdigest configuration file
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (IRDIGEST_*)
#   3. This config file
#   4. Built-in defaults
#
# The companies below are examples; replace them with your own.
# kind "comein" lists documents through a JSON report-store API,
# kind "irsite" scrapes paged HTML listings on the company's IR site
# (listing URLs contain a %d page placeholder).

`
		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		if _, err := f.Write(yamlData); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		footer := `
# For LLM digest summaries, set the API key via environment:
#   export OPENAI_API_KEY=sk-...
`
		if _, err := f.WriteString(footer); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nEdit the companies section, then run:\n")
		fmt.Printf("  irdigest crawl -k <keyword>\n\n")

		return nil
	},
}

// exampleCompanies seeds the generated config with one company per
// source kind.
func exampleCompanies() map[string]model.CompanyConfig {
	return map[string]model.CompanyConfig{
		"example-comein": {
			FullCode:      "sz000001",
			Kind:          model.SourceComein,
			ListAPIURL:    "https://store.example.com/api/report/list",
			DetailBaseURL: "https://store.example.com/report/detail",
			PreviewURL:    "https://store.example.com/fileview/onlinePreview",
			StoreID:       "1",
		},
		"example-irsite": {
			FullCode:        "sh600000",
			Kind:            model.SourceIRSite,
			BaseURL:         "https://ir.example.com",
			AnnouncementURL: "https://ir.example.com/announcements?page=%d",
			PerformanceURL:  "https://ir.example.com/performance?page=%d",
		},
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
