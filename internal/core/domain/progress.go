package domain

import "time"

// ReadStats are the running counts of an archive reader.
type ReadStats struct {
	// BytesRead is the number of compressed bytes consumed from the file.
	BytesRead int64

	// TotalBytes is the compressed file size.
	TotalBytes int64

	// Valid is the number of lines parsed into records.
	Valid int64

	// Invalid is the number of lines that failed to parse.
	Invalid int64
}

// Lines returns the number of non-blank complete lines seen so far.
func (s ReadStats) Lines() int64 {
	return s.Valid + s.Invalid
}

// Progress is a point-in-time view of one archive being ingested.
type Progress struct {
	// File is the archive name.
	File string

	ReadStats

	// Rejected is the number of parsed records that failed normalisation.
	Rejected int64

	// Limit is the requested maximum line count; 0 means unlimited.
	Limit int64

	// Elapsed is the time since the archive was opened.
	Elapsed time.Duration

	// Done is set on the final report for the archive.
	Done bool
}

// Fraction returns completion in [0,1]. When a limit is set, completion is
// measured in lines against the limit; otherwise in bytes against file size.
func (p Progress) Fraction() float64 {
	var f float64
	switch {
	case p.Limit > 0:
		f = float64(p.Lines()) / float64(p.Limit)
	case p.TotalBytes > 0:
		f = float64(p.BytesRead) / float64(p.TotalBytes)
	default:
		return 0
	}
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// ETA estimates the remaining time from the elapsed time and completion.
// Returns false when no estimate is possible (nothing completed yet).
// A complete archive has an ETA of zero.
func (p Progress) ETA() (time.Duration, bool) {
	f := p.Fraction()
	if f >= 1 {
		return 0, true
	}
	if f <= 0 {
		return 0, false
	}
	return time.Duration((1/f - 1) * float64(p.Elapsed)), true
}
