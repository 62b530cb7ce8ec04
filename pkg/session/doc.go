/*
Package session serialises the play of seeded scenarios.

A seeded scenario always produces the same report, so two requests for it
should compute it once. Manager keeps one reference-counted mutex per
scenario key inside the process and, when a ports.Locker is configured,
also takes the distributed lock so replicas sharing a store do the same.
*/
package session
