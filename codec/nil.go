package codec

import "reflect"

func isNil(v interface{}) bool {
	val := reflect.ValueOf(v)
	return val.Kind() == reflect.Ptr && val.IsNil()
}
