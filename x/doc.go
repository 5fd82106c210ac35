/*
Package x contains the interfaces shared by the extensions.

Extensions live in the subpackages. Each one exposes a Handler for its
messages, an Initializer for genesis and optionally a query registration
function, and is wired together by the app package.
*/
package x
