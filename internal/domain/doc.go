// Package domain defines the core domain types and interfaces.
//
// This package contains the comparison model (Pair, ChoiceRecord, Comparison)
// and the contracts the HTTP layer depends on (AssetStore, ChoiceLog, AppService).
// No implementation code - just contracts. Prevents circular imports by keeping
// interfaces on the consumer side.
package domain
