//go:build !race

package alerts

// passwordHashCost is deliberately above the library default; login latency
// is an acceptable trade for offline cracking resistance.
func passwordHashCost() int {
	return 14
}
