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

package usbread

import "fmt"

// ID represents a vendor or product ID.
type ID uint16

// String returns a hexadecimal ID.
func (id ID) String() string {
	return fmt.Sprintf("%04x", int(id))
}

// BCD is a binary-coded decimal version number. Its first 8 bits represent
// the major version number, the last 8 bits represent the minor version
// number. Major and minor are composed of 4 bit nibbles,
// e.g. BCD(0x1234) means major 12, minor 34.
type BCD uint16

// Version returns a BCD version number with given major/minor.
func Version(major, minor uint8) BCD {
	return (BCD(major)/10)<<12 | (BCD(major)%10)<<8 | (BCD(minor)/10)<<4 | BCD(minor)%10
}

// Major is the major number of the BCD.
func (d BCD) Major() uint8 {
	return 10*uint8(d>>12) + uint8(d>>8&0x0f)
}

// Minor is the minor number of the BCD.
func (d BCD) Minor() uint8 {
	return 10*uint8(d>>4&0x0f) + uint8(d&0x0f)
}

// String returns a dotted representation of the BCD (major.minor).
func (d BCD) String() string {
	return fmt.Sprintf("%d.%02d", d.Major(), d.Minor())
}

// Milliamperes is a unit of electric current consumption.
type Milliamperes uint

// String returns a human-readable current value.
func (ma Milliamperes) String() string {
	return fmt.Sprintf("%dmA", uint(ma))
}
