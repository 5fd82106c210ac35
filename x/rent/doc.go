/*
Package rent keeps the native balances used to pay storage deposits.

Creating a holding or an offer record charges a deposit from the payer's rent
account. The deposit is held by the created entity and returned to the
designated account when the entity is removed.
*/
package rent
