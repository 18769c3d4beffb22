/*
Package domain contains the core entities of the inquiry board: the Inquiry
record, its lifecycle statuses, the capability model, dialog request types and
the error taxonomy shared by the engine and its adapters.

It has no dependencies on transports or stores; those live behind the
interfaces in pkg/ports.
*/
package domain
