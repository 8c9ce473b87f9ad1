// Package progress renders ingestion progress.
//
// Terminal redraws a single status line with carriage returns:
//
//	RC_2024-06.zst (1200/3/4) -- [=====     ] 42.00% (1.2 GiB/3.0 GiB) -- ETA: 3 mins, 2 secs
//
// The counts are valid/rejected/invalid lines. Redraws are rate limited;
// the final frame of an archive is always drawn. Discard drops everything.
package progress
