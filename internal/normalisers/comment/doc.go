// Package comment normalises raw archive records into fixed-schema comment rows.
//
// Literal fields are copied with light coercion (numeric ids in old dumps
// become text, numeric strings become integers). Derived fields are computed
// by pure classifiers that always return one of their codes, using the
// ERROR code for values they do not recognise.
package comment
