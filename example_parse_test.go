package toml_test

import (
	"errors"
	"fmt"

	"github.com/kezhuw/tomlpos"
)

func ExampleParse() {
	data := []byte(`
[server]
host = "localhost"
ports = [8080, 8081]
`)
	doc, err := toml.Parse(data)
	if err != nil {
		panic(err)
	}

	server := doc["server"].(map[string]interface{})
	fmt.Println(server["host"], server["ports"])
	// Output: localhost [8080 8081]
}

func ExampleParse_error() {
	_, err := toml.Parse([]byte("[table"))
	fmt.Println(err)
	// Output:
	// Unexpected token: Got EOF, expected ']'
	//  at line 1, column 7
}

func ExampleParseError_OriginalMessage() {
	_, err := toml.Parse([]byte("key = 99999999999999999999"))

	var perr *toml.ParseError
	if errors.As(err, &perr) {
		pos, _ := perr.Position()
		fmt.Printf("%d:%d: %s\n", pos.Line, pos.Column, perr.OriginalMessage())
	}
	// Output: 1:7: Number out of bounds
}
