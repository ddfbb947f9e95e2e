// Package async provides safe concurrent execution primitives for background tasks.
//
// # Overview
//
// This package handles goroutine lifecycle management with panic recovery,
// timeout enforcement, and context cancellation.
//
// # Key Functions
//
// SafeGo: Execute function in goroutine with safety features
//
//	async.SafeGo(ctx, logger, 5*time.Minute, "archive warm-up", func(ctx context.Context) error {
//		provider.Warm(ctx, cat)
//		return nil
//	})
//
// # Use Cases
//
// Archive warm-up at startup, catalog reload side effects
package async
