package deploy

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// Params enumerates everything the remote deployment script needs.
// Rendering through a template with explicit fields keeps quoting
// under control; no value is spliced into shell syntax by hand.
type Params struct {
	ImageReference   string
	ContainerName    string
	HostPort         int
	ContainerPort    int
	RestartPolicy    string
	Env              map[string]string
	Region           string
	LogGroup         string
	RegistryUser     string
	RegistryEndpoint string
}

// envPair is a sorted, render-ready environment entry.
type envPair struct {
	Key   string
	Value string
}

type scriptData struct {
	Params
	EnvPairs []envPair
}

var scriptTemplate = template.Must(template.New("deploy").Funcs(template.FuncMap{
	"squote": squote,
}).Parse(`#!/bin/bash
set -euo pipefail

# Registry password is passed as the first argument so it never lands
# on disk inside this script.
printf '%s' "$1" | docker login --username {{squote .RegistryUser}} --password-stdin {{squote .RegistryEndpoint}}

docker stop {{squote .ContainerName}} >/dev/null 2>&1 || true
docker rm {{squote .ContainerName}} >/dev/null 2>&1 || true

docker pull {{squote .ImageReference}}

docker run -d \
  --name {{squote .ContainerName}} \
  --restart {{.RestartPolicy}} \
  -p {{.HostPort}}:{{.ContainerPort}} \
{{- range .EnvPairs}}
  -e {{squote (printf "%s=%s" .Key .Value)}} \
{{- end}}
{{- if .LogGroup}}
  --log-driver awslogs \
  --log-opt awslogs-region={{squote .Region}} \
  --log-opt awslogs-group={{squote .LogGroup}} \
{{- end}}
  {{squote .ImageReference}}
`))

// RenderScript produces the remote deployment script for params.
func RenderScript(params Params) (string, error) {
	data := scriptData{Params: params}
	for key, value := range params.Env {
		data.EnvPairs = append(data.EnvPairs, envPair{Key: key, Value: value})
	}
	sort.Slice(data.EnvPairs, func(i, j int) bool {
		return data.EnvPairs[i].Key < data.EnvPairs[j].Key
	})

	var b strings.Builder
	if err := scriptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render deploy script: %w", err)
	}
	return b.String(), nil
}

// squote single-quotes a shell word, escaping embedded single quotes.
func squote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
