package cacheproxy

import "fmt"

// Invoke dispatch. Rather than open-ended method interception, each resolved
// kind exposes an explicit capability table:
//
//	record:   get, get_bool, set, has, keys, len, logical_type
//	sequence: len, at, first, last
//	scalar:   value
func invokeOn(v any, op string, args []any) (any, error) {
	switch t := v.(type) {
	case *Record:
		return invokeRecord(t, op, args)
	case []any:
		return invokeSequence(t, op, args)
	default:
		return invokeScalar(v, op, args)
	}
}

func invokeRecord(r *Record, op string, args []any) (any, error) {
	switch op {
	case "get":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return r.Get(args[0]), nil
	case "get_bool":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return r.GetBool(args[0]), nil
	case "set":
		if err := arity(op, args, 2); err != nil {
			return nil, err
		}
		if err := r.Set(args[0], args[1]); err != nil {
			return nil, err
		}
		return args[1], nil
	case "has":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		return r.Has(args[0]), nil
	case "keys":
		return r.Keys(), nil
	case "len":
		return r.Len(), nil
	case "logical_type":
		return r.LogicalType(), nil
	}
	return nil, &UnsupportedOpError{Op: op, Kind: "record"}
}

func invokeSequence(s []any, op string, args []any) (any, error) {
	switch op {
	case "len":
		return len(s), nil
	case "at":
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		i, ok := asIndex(args[0])
		if !ok {
			return nil, fmt.Errorf("cacheproxy: op %q wants an integer index, got %T", op, args[0])
		}
		if i < 0 || i >= len(s) {
			return nil, nil
		}
		return s[i], nil
	case "first":
		if len(s) == 0 {
			return nil, nil
		}
		return s[0], nil
	case "last":
		if len(s) == 0 {
			return nil, nil
		}
		return s[len(s)-1], nil
	}
	return nil, &UnsupportedOpError{Op: op, Kind: "sequence"}
}

func invokeScalar(v any, op string, args []any) (any, error) {
	if op == "value" {
		return v, nil
	}
	return nil, &UnsupportedOpError{Op: op, Kind: "scalar"}
}

func arity(op string, args []any, want int) error {
	if len(args) != want {
		return fmt.Errorf("cacheproxy: op %q wants %d arg(s), got %d", op, want, len(args))
	}
	return nil
}

// asIndex accepts any integral numeric as a sequence index; codecs differ in
// how they decode ints.
func asIndex(v any) (int, bool) {
	f, ok := asNumber(v)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
