/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package serializer

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Query extracts a dotted path from a raw JSON payload, for narrowing the
// large show-command responses. The path syntax is gjson's (for example
// "metadata.policy" or "snapshots.#.snapshot").
func Query(raw []byte, path string) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("response is not valid JSON")
	}
	result := gjson.GetBytes(raw, path)
	if !result.Exists() {
		return "", fmt.Errorf("path %q not found in response", path)
	}
	return result.String(), nil
}
