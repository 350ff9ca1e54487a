package compute

import (
	"fmt"
	"strings"
	"text/template"
)

// userDataParams feeds the instance initialization template.
type userDataParams struct {
	SSHUser string
}

// userDataTemplate installs and starts the container engine at first
// boot so the deploy step can pull and run the application image.
var userDataTemplate = template.Must(template.New("userdata").Parse(`#!/bin/bash
set -euo pipefail

dnf install -y docker
systemctl enable --now docker
usermod -aG docker {{.SSHUser}}
`))

// renderUserData produces the cloud-init script for a new instance.
func renderUserData(params userDataParams) (string, error) {
	var b strings.Builder
	if err := userDataTemplate.Execute(&b, params); err != nil {
		return "", fmt.Errorf("failed to render user data: %w", err)
	}
	return b.String(), nil
}
