package io

import "reflect"

// writeReflectArray writes a var-int-prefixed array of Serializable items
// given as a slice or array of a concrete Serializable type (not the
// Serializable interface itself), matching the ergonomics the node's
// codec offers callers who have e.g. a []Witness rather than a
// []Serializable. Panics (as the teacher's codec does) on fundamentally
// wrong input shapes, since this is a programmer error, not an I/O one.
func writeReflectArray(w *BinWriter, arr any) {
	v := reflect.ValueOf(arr)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		panic("io.WriteArray: not an array or slice")
	}
	l := v.Len()
	w.WriteVarUint(uint64(l))
	for i := 0; i < l; i++ {
		el := v.Index(i)
		ser := asSerializable(el)
		ser.EncodeBinary(w)
		if w.Err != nil {
			return
		}
	}
}

// readReflectArray fills a pointer-to-slice or pointer-to-array of a
// concrete Serializable type from the underlying stream, enforcing the
// optional maxlen cap callers pass to bound allocation on untrusted input.
func readReflectArray(r *BinReader, arr any, maxlen ...int) {
	v := reflect.ValueOf(arr)
	if v.Kind() != reflect.Ptr {
		panic("io.ReadArray: not a pointer to array/slice")
	}
	v = v.Elem()

	l := int(r.ReadVarUint())
	if r.Err != nil {
		return
	}
	if len(maxlen) != 0 && l > maxlen[0] {
		r.Err = ErrArrayTooLong
		return
	}

	switch v.Kind() {
	case reflect.Slice:
		v.Set(reflect.MakeSlice(v.Type(), l, l))
	case reflect.Array:
		if l != v.Len() {
			r.Err = ErrArrayTooLong
			return
		}
	default:
		panic("io.ReadArray: not an array or slice")
	}

	for i := 0; i < l; i++ {
		el := v.Index(i)
		ser := asSerializablePtr(el)
		ser.DecodeBinary(r)
		if r.Err != nil {
			return
		}
	}
}

func asSerializable(v reflect.Value) Serializable {
	if ser, ok := v.Interface().(Serializable); ok {
		return ser
	}
	if v.CanAddr() {
		if ser, ok := v.Addr().Interface().(Serializable); ok {
			return ser
		}
	}
	panic("io: element does not implement Serializable")
}

func asSerializablePtr(v reflect.Value) Serializable {
	if !v.CanAddr() {
		panic("io: element is not addressable")
	}
	ser, ok := v.Addr().Interface().(Serializable)
	if !ok {
		panic("io: element does not implement Serializable")
	}
	return ser
}
