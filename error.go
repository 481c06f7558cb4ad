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

// Error is a libusb error code (LIBUSB_ERROR_*).
type Error int

// Error codes defined by libusb.
const (
	ErrorIO           Error = -1
	ErrorInvalidParam Error = -2
	ErrorAccess       Error = -3
	ErrorNoDevice     Error = -4
	ErrorNotFound     Error = -5
	ErrorBusy         Error = -6
	ErrorTimeout      Error = -7
	ErrorOverflow     Error = -8
	ErrorPipe         Error = -9
	ErrorInterrupted  Error = -10
	ErrorNoMem        Error = -11
	ErrorNotSupported Error = -12
	ErrorOther        Error = -99
)

var errorString = map[Error]string{
	ErrorIO:           "i/o error",
	ErrorInvalidParam: "invalid param",
	ErrorAccess:       "bad access",
	ErrorNoDevice:     "no device",
	ErrorNotFound:     "not found",
	ErrorBusy:         "device or resource busy",
	ErrorTimeout:      "timeout",
	ErrorOverflow:     "overflow",
	ErrorPipe:         "pipe error",
	ErrorInterrupted:  "interrupted",
	ErrorNoMem:        "out of memory",
	ErrorNotSupported: "not supported",
	ErrorOther:        "unknown error",
}

// Error implements the error interface.
func (e Error) Error() string {
	if s, ok := errorString[e]; ok {
		return "libusb: " + s
	}
	return fmt.Sprintf("libusb: unknown error code %d", int(e))
}
