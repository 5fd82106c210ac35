/*
Package errors implements the error taxonomy of the application.

Every error returned by a handler must wrap one of the root errors declared
with Register. A root error carries a unique ABCI code, so that a client can
tell apart an unauthorized call from an exhausted balance without parsing the
message. Wrap and Wrapf attach context and a stack trace; Is tests the root
cause of any error chain.
*/
package errors
