package io

// GetVarSize returns the number of bytes the wire encoding of v would
// occupy, without actually allocating that encoding — used by the
// transaction builder to enforce the 102,400-byte size cap and to
// compute fee-per-byte.
func GetVarSize(v any) int {
	switch val := v.(type) {
	case Serializable:
		bw := NewBufBinWriter()
		val.EncodeBinary(bw.BinWriter)
		if bw.Err != nil {
			return 0
		}
		return bw.Len()
	case []byte:
		return varUintSize(uint64(len(val))) + len(val)
	case string:
		return varUintSize(uint64(len(val))) + len(val)
	case int:
		return varUintSize(uint64(val))
	case uint64:
		return varUintSize(val)
	default:
		bw := NewBufBinWriter()
		bw.WriteArray(v)
		if bw.Err != nil {
			return 0
		}
		return bw.Len()
	}
}

// varUintSize returns the number of bytes the Neo variable-length integer
// encoding of val occupies.
func varUintSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xFFFF:
		return 3
	case val <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}
