package aisval

import (
	"fmt"
	"strconv"
)

// InvalidByteRangeError is returned if a byte range is invalid for some reason.
type InvalidByteRangeError struct {
	ByteRange *ByteRange
}

func (e *InvalidByteRangeError) Error() string {
	return fmt.Sprintf("invalid byte range %d-%d", e.ByteRange.Start, e.ByteRange.End)
}

// ByteRange is an inclusive range of bytes of an object, a zero 'End' reads until the end of the object.
//
// NOTE: Since a zero 'End' is open ended, a range covering only the first byte ('bytes=0-0') can't be expressed;
// '{Start: 0, End: 0}' requests the whole object.
type ByteRange struct {
	Start int64
	End   int64
}

// Valid returns an 'InvalidByteRangeError' if the byte range is invalid, <nil> otherwise. A <nil> range is valid.
func (b *ByteRange) Valid() error {
	if b == nil || (b.Start >= 0 && (b.End == 0 || b.End >= b.Start)) {
		return nil
	}

	return &InvalidByteRangeError{ByteRange: b}
}

// ToRangeHeader returns the value of the 'Range' header for this byte range.
func (b *ByteRange) ToRangeHeader() string {
	header := "bytes=" + strconv.FormatInt(b.Start, 10) + "-"
	if b.End != 0 {
		header += strconv.FormatInt(b.End, 10)
	}

	return header
}
