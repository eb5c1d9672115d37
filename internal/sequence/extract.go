// Package sequence implements the frame-sequence engine: frame number
// extraction from filenames, the File and Sequence entities, frame range
// compression, and the directive-based sequence formatter.
package sequence

import (
	"regexp"
)

// frameRe captures the last maximal run of digits in a filename stem.
// The digit-free tail anchor forces earlier digit runs into the head, so
// only the final run is treated as the frame number.
var frameRe = regexp.MustCompile(`^(.*?)(\d+)(\D*)$`)

// ExtractFrame splits a filename stem (directory and extension already
// removed) into head, frame string, and tail around the last run of digits.
// The frame string preserves leading zeros exactly as they appeared. When
// the stem contains no digits the whole stem is returned as the head with
// empty frame and tail.
func ExtractFrame(stem string) (head, frame, tail string) {
	m := frameRe.FindStringSubmatch(stem)
	if m == nil {
		return stem, "", ""
	}
	return m[1], m[2], m[3]
}

// SplitExtension splits a base filename on its final dot and returns the
// pre-extension stem and the extension without the dot. A name with no dot
// yields an empty extension.
func SplitExtension(name string) (stem, ext string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
