/*
Package x contains the extensions of the escrow node and the helpers they
share.

Extensions implement common functionality (Handler, Decorator,
Initializer, QueryHandler) and are combined together in cmd/escrowd/app to
construct the application. The helpers in this package describe who signed
the transaction (Authenticator) and how an object is serialized and
validated.

Follow standard go naming conventions and avoid stutter. Use eg.
`escrow.CreateMsg` in place of `escrow.CreateEscrowMsg`.
*/
package x
