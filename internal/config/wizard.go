package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// RunWizard collects an initial configuration interactively. Every
// answer is pre-filled with the built-in default, so accepting all
// prompts yields the same config a bare run would use.
func RunWizard(ctx context.Context) (*Config, error) {
	cfg := Default()
	hostPort := strconv.Itoa(cfg.Container.HostPort)
	containerPort := strconv.Itoa(cfg.Container.ContainerPort)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Application name").
				Description("Lowercase letters, digits, and hyphens. Resource names derive from it.").
				Placeholder(DefaultAppName).
				Value(&cfg.AppName).
				Validate(validateAppName),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("AWS region").
				Description("Where every resource is provisioned").
				Options(
					huh.NewOption("US East (N. Virginia) us-east-1", "us-east-1"),
					huh.NewOption("US West (Oregon) us-west-2", "us-west-2"),
					huh.NewOption("Europe (Frankfurt) eu-central-1", "eu-central-1"),
					huh.NewOption("Europe (Ireland) eu-west-1", "eu-west-1"),
					huh.NewOption("Asia Pacific (Singapore) ap-southeast-1", "ap-southeast-1"),
				).
				Value(&cfg.Region),

			huh.NewSelect[string]().
				Title("Instance type").
				Description("t2.micro is free-tier eligible").
				Options(
					huh.NewOption("t2.micro - 1 vCPU, 1GB RAM (free tier)", "t2.micro"),
					huh.NewOption("t3.micro - 2 vCPU, 1GB RAM", "t3.micro"),
					huh.NewOption("t3.small - 2 vCPU, 2GB RAM", "t3.small"),
					huh.NewOption("t3.medium - 2 vCPU, 4GB RAM", "t3.medium"),
				).
				Value(&cfg.InstanceType),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Host port").
				Description("Instance port exposed to the world").
				Value(&hostPort).
				Validate(validatePortString),

			huh.NewInput().
				Title("Container port").
				Description("Port the application listens on inside the container").
				Value(&containerPort).
				Validate(validatePortString),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	cfg.Container.HostPort, _ = strconv.Atoi(hostPort)
	cfg.Container.ContainerPort, _ = strconv.Atoi(containerPort)
	return cfg, nil
}

func validateAppName(s string) error {
	if s == "" {
		return fmt.Errorf("application name is required")
	}
	if !appNameRegex.MatchString(s) {
		return fmt.Errorf("use lowercase letters, digits, and hyphens (max 40 characters)")
	}
	return nil
}

func validatePortString(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
