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

/*
#cgo pkg-config: libusb-1.0
#include <libusb.h>

int usbread_submit(struct libusb_transfer *xfer);
*/
import "C"

import (
	"fmt"
	"log"
	"sync"
	"time"
	"unsafe"
)

type libusbContext C.libusb_context
type libusbDevice C.libusb_device
type libusbDevHandle C.libusb_device_handle
type libusbTransfer C.struct_libusb_transfer

func fromErrNo(errno C.int) error {
	if errno == 0 {
		return nil
	}
	return Error(errno)
}

// libusbIntf is a set of trivial idempotent wrappers around libusb
// functions. It exists to enable testing of the higher-level code without
// requiring an installed libusb and real USB devices.
type libusbIntf interface {
	// context
	init() (*libusbContext, error)
	handleEvents(*libusbContext, <-chan struct{})
	exit(*libusbContext) error
	setDebug(*libusbContext, int)

	// enumeration and descriptors
	getDevices(*libusbContext) ([]*libusbDevice, error)
	dereference(*libusbDevice)
	getDeviceDesc(*libusbDevice) (*DeviceDesc, error)
	getConfigDesc(*libusbDevice, int) (*ConfigDesc, error)
	open(*libusbDevice) (*libusbDevHandle, error)
	close(*libusbDevHandle)
	getStringDesc(*libusbDevHandle, int) (string, error)

	// handle operations
	setAutoDetach(*libusbDevHandle, int) error
	claim(*libusbDevHandle, uint8) error
	release(*libusbDevHandle, uint8)
	setAlt(*libusbDevHandle, uint8, uint8) error

	// transfer operations. The done channel passed to alloc receives the
	// transfer when it completes; a single channel can be shared by any
	// number of transfers.
	alloc(*libusbDevHandle, EndpointAddress, TransferType, time.Duration, int, chan *libusbTransfer) (*libusbTransfer, error)
	submit(*libusbTransfer) error
	cancel(*libusbTransfer) error
	buffer(*libusbTransfer) []byte
	data(*libusbTransfer) (int, TransferStatus)
	free(*libusbTransfer)
}

// libusbImpl is an implementation of libusbIntf using real CGo-wrapped libusb.
type libusbImpl struct{}

func (libusbImpl) init() (*libusbContext, error) {
	var ctx *C.libusb_context
	if errno := C.libusb_init(&ctx); errno != 0 {
		return nil, Error(errno)
	}
	return (*libusbContext)(ctx), nil
}

func (libusbImpl) handleEvents(c *libusbContext, done <-chan struct{}) {
	tv := C.struct_timeval{tv_usec: 100000}
	for {
		select {
		case <-done:
			return
		default:
		}
		if errno := C.libusb_handle_events_timeout_completed((*C.libusb_context)(c), &tv, nil); errno < 0 {
			log.Printf("handle_events: error: %s", Error(errno))
		}
	}
}

func (libusbImpl) exit(c *libusbContext) error {
	C.libusb_exit((*C.libusb_context)(c))
	return nil
}

func (libusbImpl) setDebug(c *libusbContext, lvl int) {
	C.libusb_set_debug((*C.libusb_context)(c), C.int(lvl))
}

func (libusbImpl) getDevices(ctx *libusbContext) ([]*libusbDevice, error) {
	var list **C.libusb_device
	cnt := C.libusb_get_device_list((*C.libusb_context)(ctx), &list)
	if cnt < 0 {
		return nil, Error(cnt)
	}
	// The list itself is freed, the devices keep their enumeration
	// reference until dereference() is called on them.
	defer C.libusb_free_device_list(list, 0)

	var ret []*libusbDevice
	for _, d := range unsafe.Slice(list, int(cnt)) {
		ret = append(ret, (*libusbDevice)(d))
	}
	return ret, nil
}

func (libusbImpl) dereference(d *libusbDevice) {
	C.libusb_unref_device((*C.libusb_device)(d))
}

func (libusbImpl) getDeviceDesc(d *libusbDevice) (*DeviceDesc, error) {
	var desc C.struct_libusb_device_descriptor
	if errno := C.libusb_get_device_descriptor((*C.libusb_device)(d), &desc); errno < 0 {
		return nil, Error(errno)
	}
	return &DeviceDesc{
		Bus:                  int(C.libusb_get_bus_number((*C.libusb_device)(d))),
		Address:              int(C.libusb_get_device_address((*C.libusb_device)(d))),
		Speed:                Speed(C.libusb_get_device_speed((*C.libusb_device)(d))),
		Spec:                 BCD(desc.bcdUSB),
		Device:               BCD(desc.bcdDevice),
		Vendor:               ID(desc.idVendor),
		Product:              ID(desc.idProduct),
		Class:                Class(desc.bDeviceClass),
		SubClass:             Class(desc.bDeviceSubClass),
		Protocol:             Protocol(desc.bDeviceProtocol),
		MaxControlPacketSize: int(desc.bMaxPacketSize0),
		NumConfigurations:    int(desc.bNumConfigurations),
		iManufacturer:        int(desc.iManufacturer),
		iProduct:             int(desc.iProduct),
		iSerialNumber:        int(desc.iSerialNumber),
	}, nil
}

func (libusbImpl) getConfigDesc(d *libusbDevice, index int) (*ConfigDesc, error) {
	var cfg *C.struct_libusb_config_descriptor
	if errno := C.libusb_get_config_descriptor((*C.libusb_device)(d), C.uint8_t(index), &cfg); errno < 0 {
		return nil, Error(errno)
	}
	defer C.libusb_free_config_descriptor(cfg)

	ret := &ConfigDesc{
		Number:       int(cfg.bConfigurationValue),
		SelfPowered:  cfg.bmAttributes&0x40 != 0,
		RemoteWakeup: cfg.bmAttributes&0x20 != 0,
		MaxPower:     2 * Milliamperes(cfg.MaxPower),
	}
	for _, iface := range unsafe.Slice(cfg._interface, int(cfg.bNumInterfaces)) {
		if iface.num_altsetting == 0 {
			continue
		}
		descs := unsafe.Slice(iface.altsetting, int(iface.num_altsetting))
		intf := InterfaceDesc{
			Number: int(descs[0].bInterfaceNumber),
		}
		for _, alt := range descs {
			setting := InterfaceSetting{
				Number:    int(alt.bInterfaceNumber),
				Alternate: int(alt.bAlternateSetting),
				Class:     Class(alt.bInterfaceClass),
				SubClass:  Class(alt.bInterfaceSubClass),
				Protocol:  Protocol(alt.bInterfaceProtocol),
			}
			for _, ep := range unsafe.Slice(alt.endpoint, int(alt.bNumEndpoints)) {
				setting.Endpoints = append(setting.Endpoints, EndpointDesc{
					Address:       EndpointAddress(ep.bEndpointAddress),
					Number:        int(ep.bEndpointAddress & endpointNumMask),
					Direction:     EndpointDirection(ep.bEndpointAddress & endpointDirectionMask),
					MaxPacketSize: int(ep.wMaxPacketSize),
					TransferType:  TransferType(ep.bmAttributes & transferTypeMask),
				})
			}
			intf.AltSettings = append(intf.AltSettings, setting)
		}
		ret.Interfaces = append(ret.Interfaces, intf)
	}
	return ret, nil
}

func (libusbImpl) open(d *libusbDevice) (*libusbDevHandle, error) {
	var handle *C.libusb_device_handle
	if errno := C.libusb_open((*C.libusb_device)(d), &handle); errno != 0 {
		return nil, Error(errno)
	}
	return (*libusbDevHandle)(handle), nil
}

func (libusbImpl) close(h *libusbDevHandle) {
	C.libusb_close((*C.libusb_device_handle)(h))
}

func (libusbImpl) getStringDesc(h *libusbDevHandle, index int) (string, error) {
	var buf [128]C.uchar
	n := C.libusb_get_string_descriptor_ascii((*C.libusb_device_handle)(h), C.uint8_t(index), &buf[0], C.int(len(buf)))
	if n < 0 {
		return "", Error(n)
	}
	return C.GoStringN((*C.char)(unsafe.Pointer(&buf[0])), n), nil
}

func (libusbImpl) setAutoDetach(h *libusbDevHandle, val int) error {
	return fromErrNo(C.libusb_set_auto_detach_kernel_driver((*C.libusb_device_handle)(h), C.int(val)))
}

func (libusbImpl) claim(h *libusbDevHandle, num uint8) error {
	return fromErrNo(C.libusb_claim_interface((*C.libusb_device_handle)(h), C.int(num)))
}

func (libusbImpl) release(h *libusbDevHandle, num uint8) {
	C.libusb_release_interface((*C.libusb_device_handle)(h), C.int(num))
}

func (libusbImpl) setAlt(h *libusbDevHandle, num, alt uint8) error {
	return fromErrNo(C.libusb_set_interface_alt_setting((*C.libusb_device_handle)(h), C.int(num), C.int(alt)))
}

// xferDone maps in-flight transfers to the completion channel of their
// group. The completion callback runs on the event-loop goroutine and only
// does the map lookup and a non-blocking channel send (the channels are
// buffered to their group's size).
var xferDone = struct {
	sync.Mutex
	m map[*libusbTransfer]chan *libusbTransfer
}{m: make(map[*libusbTransfer]chan *libusbTransfer)}

//export xferCallback
func xferCallback(xfer *C.struct_libusb_transfer) {
	t := (*libusbTransfer)(xfer)
	xferDone.Lock()
	ch := xferDone.m[t]
	xferDone.Unlock()
	ch <- t
}

func (libusbImpl) alloc(h *libusbDevHandle, addr EndpointAddress, tt TransferType, timeout time.Duration, bufLen int, done chan *libusbTransfer) (*libusbTransfer, error) {
	xfer := C.libusb_alloc_transfer(0)
	if xfer == nil {
		return nil, fmt.Errorf("libusb_alloc_transfer(0) failed")
	}
	buf := C.malloc(C.size_t(bufLen))
	if buf == nil {
		C.libusb_free_transfer(xfer)
		return nil, fmt.Errorf("malloc(%d) failed", bufLen)
	}
	xfer.dev_handle = (*C.libusb_device_handle)(h)
	xfer.endpoint = C.uchar(addr)
	xfer._type = C.uchar(tt)
	xfer.timeout = C.uint(timeout / time.Millisecond)
	xfer.buffer = (*C.uchar)(buf)
	xfer.length = C.int(bufLen)

	t := (*libusbTransfer)(xfer)
	xferDone.Lock()
	xferDone.m[t] = done
	xferDone.Unlock()
	return t, nil
}

func (libusbImpl) submit(t *libusbTransfer) error {
	return fromErrNo(C.usbread_submit((*C.struct_libusb_transfer)(t)))
}

func (libusbImpl) cancel(t *libusbTransfer) error {
	return fromErrNo(C.libusb_cancel_transfer((*C.struct_libusb_transfer)(t)))
}

func (libusbImpl) buffer(t *libusbTransfer) []byte {
	xfer := (*C.struct_libusb_transfer)(t)
	return unsafe.Slice((*byte)(unsafe.Pointer(xfer.buffer)), int(xfer.length))
}

func (libusbImpl) data(t *libusbTransfer) (int, TransferStatus) {
	xfer := (*C.struct_libusb_transfer)(t)
	return int(xfer.actual_length), TransferStatus(xfer.status)
}

func (libusbImpl) free(t *libusbTransfer) {
	xfer := (*C.struct_libusb_transfer)(t)
	xferDone.Lock()
	delete(xferDone.m, t)
	xferDone.Unlock()
	C.free(unsafe.Pointer(xfer.buffer))
	C.libusb_free_transfer(xfer)
}
