package minidrv

// Control codes, derived exactly as CTL_CODE/HID_CTL_CODE derive them so
// the values line up with what the HID class driver sends:
// deviceType<<16 | access<<14 | function<<2 | method.
const (
	methodBuffered  = 0
	methodInDirect  = 1
	methodOutDirect = 2
	methodNeither   = 3

	fileDeviceKeyboard = 0x0b // HID ioctls live on the keyboard device type
	fileDeviceUnknown  = 0x22

	fileAnyAccess = 0
)

const (
	IoctlHidGetDeviceDescriptor = fileDeviceKeyboard<<16 | fileAnyAccess<<14 | 0<<2 | methodNeither
	IoctlHidGetReportDescriptor = fileDeviceKeyboard<<16 | fileAnyAccess<<14 | 1<<2 | methodNeither
	IoctlHidReadReport          = fileDeviceKeyboard<<16 | fileAnyAccess<<14 | 2<<2 | methodNeither
	IoctlHidWriteReport         = fileDeviceKeyboard<<16 | fileAnyAccess<<14 | 3<<2 | methodNeither
	IoctlHidGetDeviceAttributes = fileDeviceKeyboard<<16 | fileAnyAccess<<14 | 9<<2 | methodNeither
	IoctlHidGetFeature          = fileDeviceKeyboard<<16 | fileAnyAccess<<14 | 100<<2 | methodOutDirect
	IoctlHidSetFeature          = fileDeviceKeyboard<<16 | fileAnyAccess<<14 | 100<<2 | methodInDirect

	// IoctlSubmitInput is the vendor control code user space uses to hand
	// a 64-byte input report to the driver out-of-band.
	IoctlSubmitInput = fileDeviceUnknown<<16 | fileAnyAccess<<14 | 0x800<<2 | methodBuffered
)
