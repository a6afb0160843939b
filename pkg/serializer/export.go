/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportEntity writes a raw JSON API payload to <dir>/<name>.json, indented.
// Slashes in entity names (composable template names can contain them) are
// flattened so the file stays inside dir. Returns the written path.
func ExportEntity(dir, name string, raw []byte) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("entity name is empty")
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return "", fmt.Errorf("entity %s is not valid JSON: %w", name, err)
	}
	pretty.WriteByte('\n')

	safe := strings.ReplaceAll(name, string(os.PathSeparator), "_")
	path := filepath.Join(dir, safe+".json")
	if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
