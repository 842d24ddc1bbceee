// Package game runs multiplayer poker hands.
//
// A Table seats players and repeatedly plays a Hand. Each Hand deals cards,
// collects antes and blinds, runs a BettingRound per street and pays out
// the pot layers kept by the Ledger. Decisions come from a Decider and every
// state change is published on an EventBus as a read-only Snapshot.
//
// Chip accounting is checked after every movement: the chips held by the
// ledger always equal the chips removed from player balances during the
// hand.
package game
