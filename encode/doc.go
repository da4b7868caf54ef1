// Package encode transforms generic value trees into the store's tagged
// attribute representation.
package encode
