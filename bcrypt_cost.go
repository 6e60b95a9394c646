//go:build !race

package sso

// passwordHashCost is fixed at build time. Raising it only affects newly
// minted hashes, stored hashes keep the cost they were created with.
func passwordHashCost() int {
	return 12
}
