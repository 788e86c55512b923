// Package types defines the shared data model of the association row store:
// row structures, column sets, association keys, the Store interface,
// configuration, and the standard error values.
// See SPEC_FULL.md § Data model.
package types
