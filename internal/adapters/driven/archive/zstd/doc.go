// Package zstd streams newline-delimited JSON records out of zstd archives.
//
// The decompressed stream is read in fixed-size chunks. A chunk that ends
// inside a multi-byte character is extended with further chunks until the
// accumulated window is valid UTF-8, up to a configured maximum. Lines are
// split on '\n' with the partial last line carried into the next chunk; the
// undelimited remainder at end of stream is discarded.
//
// Usage:
//
//	r, err := zstd.Open("data/RC_2024-06.zst", driven.ReadOptions{Limit: 1000})
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	for {
//		rec, err := r.Next()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		...
//	}
package zstd
