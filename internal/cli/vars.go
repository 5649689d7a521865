package cli

import (
	"errors"
	"fmt"
	"strings"
)

// envVarPrefix marks environment variables that set collection variables,
// e.g. PROVISION_VAR_aeName=NoiseCancellationSystem.
const envVarPrefix = "PROVISION_VAR_"

var errInvalidVar = errors.New("invalid variable, expected name=value")

// collectVars merges variables from the environment and from --var flags.
// Flags win over the environment.
func collectVars(environ, flags []string) (map[string]string, error) {
	vars := make(map[string]string)

	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, envVarPrefix) {
			continue
		}
		name = strings.TrimPrefix(name, envVarPrefix)
		if name == "" {
			continue
		}
		vars[name] = value
	}

	for _, kv := range flags {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidVar, kv)
		}
		vars[name] = value
	}

	return vars, nil
}
