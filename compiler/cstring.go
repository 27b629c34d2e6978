package compiler

// cstring materializes a NUL-terminated scratch copy of s for a single
// native call. Go strings are not NUL-terminated and their backing bytes
// must not be aliased by native code, so every call that carries a name
// or flag gets its own len+1 copy with a trailing zero byte. The copy is
// scoped to the call: callers hold it (runtime.KeepAlive) until the call
// returns and let it go immediately after.
func cstring(s string) []byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return buf
}
