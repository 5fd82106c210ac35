/*
Package utils contains the decorators wrapped around every transaction:
panic recovery, logging, metrics, tagging and the savepoint that makes the
changes of a transaction all or nothing.
*/
package utils
