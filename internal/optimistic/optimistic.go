// Package optimistic implements the apply-then-write pattern used for state
// toggles: local state flips immediately, the backend write follows, and a
// failed write triggers a reconcile that puts local state back.
package optimistic

import "context"

// Do applies the local change, performs the backend write, and on failure
// calls reconcile with the write error before returning it. reconcile is
// never called on success and may be nil when there is nothing to undo.
func Do(ctx context.Context, apply func(), write func(context.Context) error, reconcile func(context.Context, error)) error {
	if apply != nil {
		apply()
	}
	if err := write(ctx); err != nil {
		if reconcile != nil {
			reconcile(ctx, err)
		}
		return err
	}
	return nil
}
