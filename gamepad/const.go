package gamepad

// Button bitmasks for the Wheeler virtual gamepad (Xbox-style layout).
// These match the masks the control sources put on the wire.
const (
	ButtonA         = 0x0001
	ButtonB         = 0x0002
	ButtonX         = 0x0004
	ButtonY         = 0x0008
	ButtonLShoulder = 0x0010 // Left bumper (LB)
	ButtonRShoulder = 0x0020 // Right bumper (RB)
	ButtonBack      = 0x0040
	ButtonStart     = 0x0080
	ButtonLThumb    = 0x0100 // Left stick button
	ButtonRThumb    = 0x0200 // Right stick button
	ButtonDPadUp    = 0x0400
	ButtonDPadDown  = 0x0800
	ButtonDPadLeft  = 0x1000
	ButtonDPadRight = 0x2000
)

// Hat switch values (4-bit field in the input report).
const (
	HatCenter    = 0
	HatUp        = 1
	HatUpRight   = 2
	HatRight     = 3
	HatDownRight = 4
	HatDown      = 5
	HatDownLeft  = 6
	HatLeft      = 7
	HatUpLeft    = 8
)

// MaxSteerAngle is the default full-lock steering angle in degrees.
const MaxSteerAngle = 900
