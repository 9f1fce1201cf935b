package jsonwire_test

import (
	"fmt"

	"structcodec/codec"
	"structcodec/jsonwire"
)

type point struct {
	X int `codec:"x"`
	Y int `codec:"y"`
}

func ExampleMarshal() {
	data, err := jsonwire.Marshal(map[string]point{"b": {1, 2}, "a": {3, 4}})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(string(data))

	// Output:
	// {"a":{"x":3,"y":4},"b":{"x":1,"y":2}}
}

func ExampleMarshalOptions() {
	data, _ := jsonwire.MarshalOptions(codec.MakePair("label", []point{{1, 2}}), jsonwire.PrettyOptions())

	fmt.Println(string(data))

	// Output:
	// [
	//   "label",
	//   [
	//     {
	//       "x": 1,
	//       "y": 2
	//     }
	//   ]
	// ]
}

func ExampleUnmarshal() {
	p, err := jsonwire.Unmarshal[point]([]byte(`{"y": 2, "x": 1}`))
	fmt.Println(p, err)

	_, err = jsonwire.Unmarshal[point]([]byte(`{"x": 1}`))
	fmt.Println(err)

	// Output:
	// {1 2} <nil>
	// codec: decode jsonwire_test.point at $ (offset 8): missing field "y"
}
