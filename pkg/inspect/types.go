package inspect

import "context"

// Inspector is the interface that wraps the Inspect method.
// Inspect collects and renders a cluster overview with the provided context.
type Inspector interface {
	Inspect(ctx context.Context) error
}
