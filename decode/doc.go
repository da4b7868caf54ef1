// Package decode transforms the store's tagged attribute representation
// back into generic value trees.
package decode
