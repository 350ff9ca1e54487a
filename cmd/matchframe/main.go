// Package main is the entry point for the matchframe CLI.
//
// matchframe provisions the AWS infrastructure for a containerized
// application and deploys it: an ECR repository, a security group, an
// EC2 key pair, an EC2 instance, and a CloudWatch log group, followed
// by an image build, push, and remote container start over SSH.
//
// Commands: init, up, deploy, destroy, doctor, version.
//
// For detailed usage information, run:
//
//	matchframe --help
package main

import (
	"fmt"
	"os"

	"github.com/matchframe/matchframe/cmd/matchframe/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
