package port

import "context"

// ChangeNotifier broadcasts table-change events so that readers can
// invalidate cached rows. Publish is best effort; a lost notification only
// delays a refresh until the next read-through.
type ChangeNotifier interface {
	// Publish announces that rows of the table changed.
	Publish(ctx context.Context, table string) error
	// Subscribe registers fn to run on every change of the table. The
	// returned stop function cancels the subscription and must be called on
	// teardown.
	Subscribe(ctx context.Context, table string, fn func()) (stop func(), err error)
}
