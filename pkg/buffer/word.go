package buffer

// IsWordByte reports whether c is considered part of a word.
// Words consist of ASCII letters, digits, or underscore characters.
func IsWordByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// WordStart returns the index of the beginning of the word that ends before pos.
// It behaves similar to Vim's 'b' motion.
func WordStart(s Storage, pos int) int {
	if s == nil || s.Len() == 0 {
		return 0
	}
	if pos > s.Len() {
		pos = s.Len()
	}
	if pos > 0 {
		pos--
	}
	for pos > 0 && !IsWordByte(s.At(pos)) {
		pos--
	}
	for pos > 0 && IsWordByte(s.At(pos-1)) {
		pos--
	}
	return pos
}

// NextWordStart returns the index of the start of the next word after pos.
// It behaves similar to Vim's 'w' motion.
func NextWordStart(s Storage, pos int) int {
	if s == nil || s.Len() == 0 {
		return 0
	}
	if pos >= s.Len() {
		return s.Len()
	}
	for pos < s.Len() && IsWordByte(s.At(pos)) {
		pos++
	}
	for pos < s.Len() && !IsWordByte(s.At(pos)) {
		pos++
	}
	return pos
}
