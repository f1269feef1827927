package apds9960

// Address is the fixed 7-bit I2C address of the APDS-9960.
const Address = 0x39

// DeviceIDs reported by the ID register on known silicon revisions.
var DeviceIDs = []uint8{0xAB, 0x9C, 0xA8}

// Registers
const (
	regEnable    = 0x80
	regATime     = 0x81
	regWTime     = 0x83
	regPILT      = 0x89
	regPIHT      = 0x8B
	regPers      = 0x8C
	regConfig1   = 0x8D
	regPPulse    = 0x8E
	regControl   = 0x8F
	regConfig2   = 0x90
	regID        = 0x92
	regStatus    = 0x93
	regPData     = 0x9C
	regPOffsetUR = 0x9D
	regPOffsetDL = 0x9E
	regConfig3   = 0x9F
	regGPEnTh    = 0xA0
	regGExTh     = 0xA1
	regGConf1    = 0xA2
	regGConf2    = 0xA3
	regGOffsetU  = 0xA4
	regGOffsetD  = 0xA5
	regGPulse    = 0xA6
	regGOffsetL  = 0xA7
	regGOffsetR  = 0xA9
	regGConf3    = 0xAA
	regGConf4    = 0xAB
	regGFLvl     = 0xAE
	regGStatus   = 0xAF
	regIForce    = 0xE4
	regPIClear   = 0xE5
	regCIClear   = 0xE6
	regAIClear   = 0xE7
	regGFifoU    = 0xFC
	regGFifoD    = 0xFD
	regGFifoL    = 0xFE
	regGFifoR    = 0xFF
)

// Mode is a bit index in the ENABLE register.
type Mode uint8

// ENABLE register bits
const (
	ModePower           Mode = 0 // PON
	ModeAmbientLight    Mode = 1 // AEN
	ModeProximity       Mode = 2 // PEN
	ModeWait            Mode = 3 // WEN
	ModeAmbientLightInt Mode = 4 // AIEN
	ModeProximityInt    Mode = 5 // PIEN
	ModeGesture         Mode = 6 // GEN
	ModeAll             Mode = 7
)

const (
	enableMask  = 0x7F
	sensingMask = 1<<ModePower | 1<<ModeGesture
)

// GSTATUS bits
const (
	gstatusGValid = 0x01
	gstatusGFOV   = 0x02
)

// GCONF4 bits
const (
	gconf4GMode    = 0x01
	gconf4GIEN     = 0x02
	gconf4GFifoClr = 0x04
)

// Gesture gain (GCONF2 bits 6:5)
const (
	GestureGain1x uint8 = iota
	GestureGain2x
	GestureGain4x
	GestureGain8x
)

// LED drive current (GCONF2 bits 4:3)
const (
	LEDDrive100mA uint8 = iota
	LEDDrive50mA
	LEDDrive25mA
	LEDDrive12mA
)

// LED boost (CONFIG2 bits 5:4)
const (
	LEDBoost100 uint8 = iota
	LEDBoost150
	LEDBoost200
	LEDBoost300
)

// Gesture wait time between cycles (GCONF2 bits 2:0)
const (
	GestureWait0ms uint8 = iota
	GestureWait2_8ms
	GestureWait5_6ms
	GestureWait8_4ms
	GestureWait14ms
	GestureWait22_4ms
	GestureWait30_8ms
	GestureWait39_2ms
)

// Gesture defaults applied by EnableGesture
const (
	DefaultGestureEnter = 40   // GPENTH
	DefaultGestureExit  = 30   // GEXTH
	DefaultGConf1       = 0x40 // 4 gesture events for interrupt, 1 for exit
	DefaultGestureGain  = GestureGain4x
	DefaultGestureDrive = LEDDrive100mA
	DefaultGestureWait  = GestureWait2_8ms
	DefaultGPulse       = 0xC9 // 32us, 10 pulses
	DefaultGConf3       = 0x00 // all photodiodes active
	DefaultLEDBoost     = LEDBoost300
)

// fifoDepth is the number of 4-byte datasets the gesture FIFO holds.
const fifoDepth = 32
