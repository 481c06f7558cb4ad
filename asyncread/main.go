// Copyright 2025 the usbread Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// asyncread reads from the first readable interrupt or bulk IN endpoint of
// the USB device identified by a vendor/product ID pair given on the
// command line, keeping several asynchronous transfers in flight, and
// prints every completed transfer. It never terminates on its own once
// reading has started; interrupt it with ^C.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/usbio/usbread"
)

// parseID parses a vendor or product ID given in decimal, hex (0x prefix)
// or octal (0 prefix).
func parseID(s string) (usbread.ID, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid device ID %q: %v", s, err)
	}
	return usbread.ID(v), nil
}

func run(args []string, w io.Writer) error {
	if len(args) < 2 {
		fmt.Fprintln(w, "usage: asyncread <vendor-id> <product-id>")
		return nil
	}
	vid, err := parseID(args[0])
	if err != nil {
		return err
	}
	pid, err := parseID(args[1])
	if err != nil {
		return err
	}

	ctx := usbread.NewContext()
	defer ctx.Close()

	log.Printf("Scanning for device %s:%s...", vid, pid)
	dev, err := ctx.OpenDeviceWithVIDPID(vid, pid)
	if err != nil {
		return fmt.Errorf("could not open device %s:%s: %v", vid, pid, err)
	}
	if dev == nil {
		fmt.Fprintf(w, "could not find device %s:%s\n", vid, pid)
		return nil
	}
	defer dev.Close()

	if man, err := dev.Manufacturer(); err == nil {
		log.Printf("Manufacturer: %s", man)
	}
	if prod, err := dev.Product(); err == nil {
		log.Printf("Product: %s", prod)
	}

	return usbread.ReadDevice(dev, w)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
