// Package cli holds flag helpers shared by the commands.
package cli

import (
	"fmt"
	"strings"
)

// KVList collects repeatable key=value flag values.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends a raw key=value entry.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map converts the collected entries into a config map. Later entries win.
func (l KVList) Map() map[string]string {
	if len(l) == 0 {
		return nil
	}
	m := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return m
}
