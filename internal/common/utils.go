package common

// WipeByteArray overwrites the contents of b with zeros. It is used to drop
// typed passwords from memory once a prompt is done with them.
//
// A nil slice is ignored.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
