package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/folio/internal/config"
)

func main() {
	// Create a config with defaults applied
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	// Secrets belong in the environment
	cfg.Storage.S3.AccessKeyID = ""
	cfg.Storage.S3.SecretAccessKey = ""
	cfg.Storage.Redis.Password = ""

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating YAML: %v\n", err)
		os.Exit(1)
	}

	header := "# Folio configuration example\n" +
		"# Copy this file to config.yaml and customize as needed.\n" +
		"# Credentials are read from the environment:\n" +
		"#   " + config.EnvS3AccessKeyID + ", " + config.EnvS3SecretAccessKey + ", " + config.EnvRedisPassword + "\n\n"
	output := header + string(yamlData)

	outputFile := "config.example.yaml"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	if outputFile == "-" {
		fmt.Print(output)
		return
	}
	if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
}
