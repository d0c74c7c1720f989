package event

// Status is the local sync state of one event.
type Status string

const (
	// StatusLocalOnly marks an event that exists only locally and has no
	// confirmed remote counterpart yet.
	StatusLocalOnly Status = "local_only"
	// StatusPending marks a synced event with local edits awaiting a push.
	StatusPending Status = "pending"
	// StatusSynced marks an event whose content matches the remote copy.
	StatusSynced Status = "synced"
	// StatusError marks an event whose last push failed. The error text sits
	// in SyncError; the event stays eligible for a retry push.
	StatusError Status = "error"
)

// StatusEvent is something that happened to an event's sync lifecycle.
type StatusEvent string

const (
	// ForwardSync: the record was refreshed from Spond.
	ForwardSync StatusEvent = "forward_sync"
	// LocalEdit: a caller mutated the record's content locally.
	LocalEdit StatusEvent = "local_edit"
	// PushSucceeded: a reverse-sync call completed.
	PushSucceeded StatusEvent = "push_succeeded"
	// PushFailed: a reverse-sync call errored.
	PushFailed StatusEvent = "push_failed"
)

// NextStatus is the single place the status precedence rules live.
//
// local_only always wins over a forward sync: a record Spond has never seen
// must not be flipped to synced by an unrelated refresh. A local edit on a
// synced record queues it as pending; edits on local_only records leave them
// local_only. Push outcomes overwrite whatever was there.
func NextStatus(current Status, ev StatusEvent) Status {
	switch ev {
	case ForwardSync:
		if current == StatusLocalOnly {
			return StatusLocalOnly
		}
		return StatusSynced
	case LocalEdit:
		if current == StatusLocalOnly {
			return StatusLocalOnly
		}
		return StatusPending
	case PushSucceeded:
		return StatusSynced
	case PushFailed:
		return StatusError
	default:
		return current
	}
}
