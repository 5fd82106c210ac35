/*
Package offer implements an escrow based atomic swap.

A maker deposits an amount of asset A into a vault and states the amount of
asset B wanted in return. The vault is the associated holding of a derived
authority, an address computed from the maker and the offer id that lies off
the ed25519 curve, so no private key can ever sign for it. Only this package,
recomputing the authority from the stored bump, moves value out of a vault.

A taker closes the offer in a single transaction: asset B goes to the maker,
the whole vault goes to the taker, then the vault and the offer record are
dissolved and their deposits returned to the maker. Offers are binding, there
is no cancellation.
*/
package offer
