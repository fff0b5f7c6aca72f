package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/rawbytedev/bitmask"
)

const schemaDoc = `
mode: explicit
total_bits: 8
flags:
  - name: enabled
    index: 0
  - name: limited_position
    index: 3
  - name: stop_on_estop
    index: 7
`

type MotorConfigOptions struct {
	Enabled         bool
	LimitedPosition bool
	StopOnEstop     bool
}

func main() {
	// Struct binding: pack three flags into one byte.
	c := bitmask.New()
	config := MotorConfigOptions{Enabled: true, StopOnEstop: true}
	data, err := c.Marshal(config)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("packed %+v into %08b\n", config, data[0])

	res := &MotorConfigOptions{}
	if err := c.Unmarshal([]byte{0b101}, res); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("unpacked 00000101 into %+v\n", *res)

	// Schema file: same flags, sparse explicit layout.
	schema, err := bitmask.LoadSchema(strings.NewReader(schemaDoc))
	if err != nil {
		log.Fatal(err)
	}
	bits := schema.PackBits(map[string]bool{"enabled": true, "stop_on_estop": true})
	fmt.Printf("sparse layout across %d slots: %v\n", schema.TotalBits(), bits)
}
