/*
Package ports defines the interfaces between the workflow engine and the
outside world: the record store that persists inquiries, the dialog surface
that asks the user blocking questions, and the secret verifier that gates
password-protected records.

Adapters live in pkg/adapters; the engine in internal/workflow depends only
on these interfaces.
*/
package ports
