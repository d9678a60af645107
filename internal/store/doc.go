// Package store provides file-based persistence for the device secret and
// the in-progress recovery session record.
//
// The device secret is sealed in a passphrase-derived encryption envelope;
// the session record is plain JSON (it holds no secret material, only the
// dry-run flag). All writes go through a temp file and an atomic rename, and
// all methods are concurrency-safe via internal locking. Files live under
// the user's configured home directory.
package store
