package ports

import "context"

// DeviceSession is the device transport collaborator. Every method is a
// blocking round-trip against one CLI session; the engine issues them
// strictly one at a time.
type DeviceSession interface {
	// Fetch issues a read-only show command and returns the unparsed text.
	Fetch(ctx context.Context, command string) (string, error)

	// SubmitBatch enters configuration mode, applies lines in order and
	// exits configuration mode. A device refusal mid-batch surfaces as a
	// CodeDeviceRejected error; no rollback is attempted.
	SubmitBatch(ctx context.Context, lines []string) error

	// SubmitSingle issues one configuration command. Used for file-driven
	// application where each file line is pushed individually.
	SubmitSingle(ctx context.Context, command string) error

	// Persist copies the running configuration to non-volatile storage.
	Persist(ctx context.Context) error

	// Host identifies the device, used for default backup file naming.
	Host() string

	Close() error
}

// BackupStore persists a raw running-config snapshot and returns the path
// it was written to.
type BackupStore interface {
	Write(ctx context.Context, host string, contents string) (string, error)
}
