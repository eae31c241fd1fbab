package persistence

import "hash/crc32"

// Snapshot integrity uses CRC32 (IEEE polynomial): fast, hardware
// accelerated on modern CPUs, and good at catching storage corruption.
// It is not cryptographically secure and is not meant for tamper detection.

// Checksum calculates the CRC32 checksum of data.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// VerifyChecksum compares the checksum of data against the expected value.
func VerifyChecksum(data []byte, expected uint32) error {
	actual := Checksum(data)
	if actual != expected {
		return &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}
