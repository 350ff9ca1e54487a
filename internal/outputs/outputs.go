// Package outputs persists the result of a provisioning run as a flat
// KEY=VALUE file.
//
// The file is truncated and fully rewritten on each run, so it always
// reflects the most recent provisioning state. Later commands (deploy,
// destroy) load it to find the resources a previous run resolved.
package outputs

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultFile is where a provisioning run records its results.
const DefaultFile = "deploy.env"

// Keys, in the order they are written.
const (
	KeyRegion          = "REGION"
	KeyRepositoryURI   = "ECR_URI"
	KeySecurityGroupID = "SECURITY_GROUP_ID"
	KeyInstanceID      = "INSTANCE_ID"
	KeyPublicIP        = "PUBLIC_IP"
)

// Outputs is the configuration record of one provisioning run.
type Outputs struct {
	Region          string
	RepositoryURI   string
	SecurityGroupID string
	InstanceID      string
	PublicIP        string
}

// Validate checks that every required key has a value.
func (o *Outputs) Validate() error {
	var missing []string
	for _, kv := range []struct{ key, value string }{
		{KeyRegion, o.Region},
		{KeyRepositoryURI, o.RepositoryURI},
		{KeySecurityGroupID, o.SecurityGroupID},
		{KeyInstanceID, o.InstanceID},
		{KeyPublicIP, o.PublicIP},
	} {
		if kv.value == "" {
			missing = append(missing, kv.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("outputs missing required keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Write truncates path and writes the record as KEY=VALUE lines,
// exactly one line per key.
func (o *Outputs) Write(path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%s\n", KeyRegion, o.Region)
	fmt.Fprintf(&b, "%s=%s\n", KeyRepositoryURI, o.RepositoryURI)
	fmt.Fprintf(&b, "%s=%s\n", KeySecurityGroupID, o.SecurityGroupID)
	fmt.Fprintf(&b, "%s=%s\n", KeyInstanceID, o.InstanceID)
	fmt.Fprintf(&b, "%s=%s\n", KeyPublicIP, o.PublicIP)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write outputs file: %w", err)
	}
	return nil
}

// Load reads a record written by Write. Unknown keys are ignored so the
// format can grow; blank lines and #-comments are skipped.
func Load(path string) (*Outputs, error) {
	// #nosec G304 - path is operator-supplied input
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open outputs file: %w", err)
	}
	defer f.Close()

	o := &Outputs{}
	seen := map[string]int{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("malformed outputs line: %q", line)
		}
		seen[key]++
		if seen[key] > 1 {
			return nil, fmt.Errorf("duplicate outputs key: %s", key)
		}
		switch key {
		case KeyRegion:
			o.Region = value
		case KeyRepositoryURI:
			o.RepositoryURI = value
		case KeySecurityGroupID:
			o.SecurityGroupID = value
		case KeyInstanceID:
			o.InstanceID = value
		case KeyPublicIP:
			o.PublicIP = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outputs file: %w", err)
	}

	return o, nil
}
