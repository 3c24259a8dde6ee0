package inkwell

import "log"

// Maintain runs the janitor sweep: unused tags first, then stale sessions.
// Both steps are idempotent and safe next to live traffic, and the sweep
// succeeds no matter how many rows it touched. Meant to be invoked out of
// band, e.g. from cron via the maintain subcommand.
func Maintain(store *Store, sessions *Sessions) error {
	tags, err := store.PruneTags()
	if err != nil {
		return err
	}
	keys, err := sessions.Prune()
	if err != nil {
		return err
	}
	log.Printf("maintenance: pruned %d tags, %d sessions", tags, keys)
	return nil
}
