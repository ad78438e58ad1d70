/*
Package escrow implements a custodial escrow. A single depositor funds the
escrow, and a single arbiter either releases the deposited value to the
beneficiary or refunds it to the depositor. Settlement happens at most once.

Funds held by an escrow live in the cash account of the escrow address, which
is derived from a condition that nobody can sign for. Only this extension
moves value out of that account.
*/
package escrow
