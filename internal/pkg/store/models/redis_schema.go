package storemodels

import "fmt"

// StatusSnapshotKeyBuilder builds the cache key for a loan's derived
// collection sheet.
func StatusSnapshotKeyBuilder(loanID string) string {
	return fmt.Sprintf("collectionledger:status:%s", loanID)
}
