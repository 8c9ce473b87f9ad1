// Package normalisers holds implementations of the driven.Normaliser port.
// Each subpackage maps one kind of archive record onto one store table.
package normalisers
