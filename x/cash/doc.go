/*
Package cash keeps the balance of every account and moves value between
them.

There is no logic in the coins, except that the balance of any account may
not go below zero and must never overflow. Escrow instances and factories
are accounts like any other: their custodial balance is the wallet stored
under their address.
*/
package cash
