/*
Package token is the asset ledger: mints, holdings and the transfer service
used by other extensions.

A mint identifies one asset and declares its decimals. A holding keeps the
balance of one mint for one owner. Every owner has a canonical holding per
mint, the associated holding, at an address derived from the owner and the
mint. Holdings are created on demand by a payer who deposits native rent,
refunded when the holding is dissolved.
*/
package token
