/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "coded error",
			err:  New(ErrCodeConfig, "missing file"),
			want: ErrCodeConfig,
		},
		{
			name: "wrapped coded error",
			err:  fmt.Errorf("outer: %w", New(ErrCodeTimeout, "poll deadline elapsed")),
			want: ErrCodeTimeout,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("something"),
			want: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestHasCode(t *testing.T) {
	err := Wrap(ErrCodeResponse, fmt.Errorf("status 503"), "cluster health")
	assert.True(t, HasCode(err, ErrCodeResponse))
	assert.False(t, HasCode(err, ErrCodeRequest))
	assert.False(t, HasCode(fmt.Errorf("plain"), ErrCodeResponse))
}

func TestErrorString(t *testing.T) {
	err := Wrap(ErrCodeResponse, fmt.Errorf("status 503"), "getting %s", "_cluster/health")
	assert.Equal(t, "RESPONSE: getting _cluster/health: status 503", err.Error())

	flat := New(ErrCodeAborted, "restore cancelled")
	assert.Equal(t, "ABORTED: restore cancelled", flat.Error())
}
